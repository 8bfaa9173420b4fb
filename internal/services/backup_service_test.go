package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/giftwheel/giveaway-backend/internal/config"
	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedMemberRepo serves FindAll in real pages so export pagination is
// observable.
type pagedMemberRepo struct {
	fakeMemberRepo
}

func (r *pagedMemberRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Member, error) {
	start := (page - 1) * limit
	if start >= len(r.members) {
		return nil, nil
	}
	end := start + limit
	if end > len(r.members) {
		end = len(r.members)
	}
	return r.members[start:end], nil
}

func TestRunBackupExportsEveryPage(t *testing.T) {
	members := &pagedMemberRepo{}
	for i := 0; i < 2*exportPageSize+500; i++ {
		members.members = append(members.members, member(fmt.Sprintf("member-%04d", i), i%5))
	}

	dir := t.TempDir()
	service := NewBackupService(
		newFakeGiveawayRepo(), members, &fakePurchaseRepo{}, &fakeWinnerRepo{},
		config.BackupConfig{Directory: dir},
	)

	counts, err := service.RunBackup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(members.members), counts["members"])

	stamps, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, stamps, 1)

	payload, err := os.ReadFile(filepath.Join(dir, stamps[0].Name(), "members.json"))
	require.NoError(t, err)

	var exported []*models.Member
	require.NoError(t, json.Unmarshal(payload, &exported))
	assert.Len(t, exported, len(members.members))
	assert.Equal(t, "member-0000", exported[0].Username)
	assert.Equal(t, fmt.Sprintf("member-%04d", len(exported)-1), exported[len(exported)-1].Username)
}

func TestRunBackupWritesAllCollections(t *testing.T) {
	dir := t.TempDir()
	giveaways := newFakeGiveawayRepo()
	require.NoError(t, giveaways.Create(context.Background(), &models.Giveaway{Title: "Weekly"}))

	service := NewBackupService(
		giveaways, &pagedMemberRepo{}, &fakePurchaseRepo{}, &fakeWinnerRepo{},
		config.BackupConfig{Directory: dir},
	)

	counts, err := service.RunBackup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts["giveaways"])

	stamps, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, stamps, 1)
	for _, name := range []string{"giveaways.json", "members.json", "purchases.json", "winners.json"} {
		_, err := os.Stat(filepath.Join(dir, stamps[0].Name(), name))
		assert.NoError(t, err, name)
	}
}
