package utils

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/giftwheel/giveaway-backend/internal/repositories"
)

// ImportResult summarizes one CSV import run. Row-level problems are
// collected rather than aborting the run.
type ImportResult struct {
	TotalRows        int      `json:"totalRows"`
	MembersCreated   int      `json:"membersCreated"`
	MembersUpdated   int      `json:"membersUpdated"`
	PurchasesCreated int      `json:"purchasesCreated"`
	EntriesAwarded   int      `json:"entriesAwarded"`
	Errors           []string `json:"errors"`
}

// CSVImporter backfills members and purchases from exported spreadsheets
type CSVImporter struct {
	memberRepo   repositories.MemberRepository
	purchaseRepo repositories.PurchaseRepository
}

// NewCSVImporter creates a new CSVImporter
func NewCSVImporter(memberRepo repositories.MemberRepository, purchaseRepo repositories.PurchaseRepository) *CSVImporter {
	return &CSVImporter{
		memberRepo:   memberRepo,
		purchaseRepo: purchaseRepo,
	}
}

// ImportPurchases reads a purchase-history CSV and upserts members with their
// accrued entries. Column headers are matched case-insensitively against a
// few common spellings, so exports from different tools work unchanged.
func (i *CSVImporter) ImportPurchases(ctx context.Context, filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	usernameIdx := findColumnIndex(header, []string{"Username", "Member", "User"})
	displayIdx := findColumnIndex(header, []string{"Display Name", "Name", "Nickname"})
	amountIdx := findColumnIndex(header, []string{"Amount", "Gems", "Price"})
	itemIdx := findColumnIndex(header, []string{"Item", "Item Name", "Cosmetic"})
	dateIdx := findColumnIndex(header, []string{"Date", "Purchase Date", "Purchased At"})

	if usernameIdx == -1 {
		return nil, fmt.Errorf("username column not found in CSV")
	}

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("error reading row: %v", err))
			continue
		}
		result.TotalRows++

		username := NormalizeUsername(row[usernameIdx])
		if username == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: no username", result.TotalRows))
			continue
		}

		var amount float64
		if amountIdx != -1 && row[amountIdx] != "" {
			amount, err = strconv.ParseFloat(strings.TrimSpace(row[amountIdx]), 64)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid amount %q", result.TotalRows, row[amountIdx]))
				continue
			}
		}

		date := time.Now()
		if dateIdx != -1 && row[dateIdx] != "" {
			parsed, err := parseDate(row[dateIdx])
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid date %q", result.TotalRows, row[dateIdx]))
			} else {
				date = parsed
			}
		}

		displayName := ""
		if displayIdx != -1 {
			displayName = strings.TrimSpace(row[displayIdx])
		}
		itemName := ""
		if itemIdx != -1 {
			itemName = strings.TrimSpace(row[itemIdx])
		}

		entries := CalculateEntries(amount)

		member, err := i.memberRepo.FindByUsername(ctx, username)
		if err != nil {
			member = &models.Member{
				Username:    username,
				DisplayName: displayName,
				CreatedAt:   time.Now(),
			}
			member.Entries = entries
			member.TotalSpent = amount
			member.PurchaseCount = 1
			member.LastPurchaseAt = date
			member.UpdatedAt = time.Now()
			if err := i.memberRepo.Create(ctx, member); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: failed to create member: %v", result.TotalRows, err))
				continue
			}
			result.MembersCreated++
		} else {
			member.Entries += entries
			member.TotalSpent += amount
			member.PurchaseCount++
			if displayName != "" {
				member.DisplayName = displayName
			}
			if date.After(member.LastPurchaseAt) {
				member.LastPurchaseAt = date
			}
			member.UpdatedAt = time.Now()
			if err := i.memberRepo.Update(ctx, member); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: failed to update member: %v", result.TotalRows, err))
				continue
			}
			result.MembersUpdated++
		}

		if amount > 0 {
			purchase := &models.Purchase{
				Username:      username,
				ItemName:      itemName,
				Amount:        amount,
				Source:        models.PurchaseSourceCSV,
				PurchasedAt:   date,
				EntriesEarned: entries,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}
			if err := i.purchaseRepo.Create(ctx, purchase); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: failed to create purchase: %v", result.TotalRows, err))
				continue
			}
			result.PurchasesCreated++
			result.EntriesAwarded += entries
		}
	}

	return result, nil
}

// findColumnIndex finds the index of a column by possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

// parseDate parses a date string in the formats spreadsheet exports use
func parseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)

	formats := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
		"01/02/2006",
		"02/01/2006",
		"Jan 2, 2006",
		"2 Jan 2006",
	}
	for _, format := range formats {
		date, err := time.Parse(format, dateStr)
		if err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
