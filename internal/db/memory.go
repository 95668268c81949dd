package db

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

// MemoryDatabase keeps documents bson-encoded in memory. Every read decodes a
// fresh copy, so callers never alias stored state.
type MemoryDatabase struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	// commits counts applied change sets
	commits int
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{collections: make(map[string]map[string][]byte)}
}

func (m *MemoryDatabase) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryDatabase) Commit(ctx context.Context, cs *ChangeSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// encode everything before touching the store
	mutations := cs.Mutations()
	encoded := make([][]byte, len(mutations))
	for i, mut := range mutations {
		if mut.IsDelete() {
			continue
		}
		data, err := model.Marshal(mut.Doc)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", mutationKey(mut.Collection, mut.ID), err)
		}
		encoded[i] = data
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, mut := range mutations {
		coll, ok := m.collections[mut.Collection]
		if !ok {
			coll = make(map[string][]byte)
			m.collections[mut.Collection] = coll
		}
		key := fmt.Sprint(mut.ID)
		if mut.IsDelete() {
			delete(coll, key)
			continue
		}
		coll[key] = encoded[i]
	}
	m.commits++
	return nil
}

// Commits returns how many change sets were applied.
func (m *MemoryDatabase) Commits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commits
}

func (m *MemoryDatabase) load(collection string, id any, out any) error {
	m.mu.RLock()
	data, ok := m.collections[collection][fmt.Sprint(id)]
	m.mu.RUnlock()

	if !ok {
		return &NotFoundError{Collection: collection, ID: id}
	}
	return model.Unmarshal(data, out)
}

func loadAll[T any](m *MemoryDatabase, collection string, keep func(*T) bool) ([]*T, error) {
	m.mu.RLock()
	raw := make([][]byte, 0, len(m.collections[collection]))
	for _, data := range m.collections[collection] {
		raw = append(raw, data)
	}
	m.mu.RUnlock()

	res := make([]*T, 0, len(raw))
	for _, data := range raw {
		doc := new(T)
		if err := model.Unmarshal(data, doc); err != nil {
			return nil, err
		}
		if keep(doc) {
			res = append(res, doc)
		}
	}
	return res, nil
}

func (m *MemoryDatabase) GetGlobalConfig(_ context.Context) (*model.GlobalConfigDocument, error) {
	var doc model.GlobalConfigDocument
	if err := m.load(model.GlobalConfigCollection, model.GlobalConfigID, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MemoryDatabase) GetBridgeConfig(_ context.Context) (*model.BridgeConfigDocument, error) {
	var doc model.BridgeConfigDocument
	if err := m.load(model.BridgeConfigCollection, model.BridgeConfigID, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MemoryDatabase) GetRole(_ context.Context, identity solana.PublicKey, role types.Role) (*model.RoleDocument, error) {
	var doc model.RoleDocument
	if err := m.load(model.RoleCollection, model.RoleID(identity, role), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MemoryDatabase) GetPendingPayout(_ context.Context, identity solana.PublicKey) (*model.PendingPayoutDocument, error) {
	var doc model.PendingPayoutDocument
	if err := m.load(model.PendingPayoutCollection, identity.String(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MemoryDatabase) GetAssetApproval(_ context.Context, mint solana.PublicKey) (*model.AssetApprovalDocument, error) {
	var doc model.AssetApprovalDocument
	if err := m.load(model.AssetApprovalCollection, mint.String(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MemoryDatabase) GetTournament(_ context.Context, id uint32) (*model.TournamentDocument, error) {
	var doc model.TournamentDocument
	if err := m.load(model.TournamentCollection, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MemoryDatabase) FindTournaments(_ context.Context) ([]*model.TournamentDocument, error) {
	tournaments, err := loadAll(m, model.TournamentCollection, func(*model.TournamentDocument) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].ID < tournaments[j].ID
	})
	return tournaments, nil
}

func (m *MemoryDatabase) GetTeam(_ context.Context, tournamentID uint32, captain solana.PublicKey) (*model.TeamDocument, error) {
	var doc model.TeamDocument
	if err := m.load(model.TeamCollection, model.TeamID(tournamentID, captain), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MemoryDatabase) FindTeamsByTournament(_ context.Context, tournamentID uint32) ([]*model.TeamDocument, error) {
	teams, err := loadAll(m, model.TeamCollection, func(team *model.TeamDocument) bool {
		return team.TournamentID == tournamentID
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Seq < teams[j].Seq
	})
	return teams, nil
}

func (m *MemoryDatabase) GetTokenAccount(_ context.Context, owner, mint solana.PublicKey) (*model.TokenAccountDocument, error) {
	var doc model.TokenAccountDocument
	if err := m.load(model.TokenAccountCollection, model.TokenAccountID(owner, mint), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MemoryDatabase) CountTournamentsByStatus(_ context.Context) (map[types.TournamentStatus]int64, error) {
	tournaments, err := loadAll(m, model.TournamentCollection, func(*model.TournamentDocument) bool { return true })
	if err != nil {
		return nil, err
	}

	counts := make(map[types.TournamentStatus]int64, len(types.AllTournamentStatuses()))
	for _, status := range types.AllTournamentStatuses() {
		counts[status] = 0
	}
	for _, t := range tournaments {
		counts[t.Status]++
	}
	return counts, nil
}
