package db

import (
	"context"
	"sort"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

// Txn is a read-through overlay over the database. Reads observe the txn's
// own pending writes; nothing reaches the database until Commit.
// A Txn is not safe for concurrent use.
type Txn struct {
	db    DbInterface
	cs    *ChangeSet
	reads map[string]any
}

func NewTxn(db DbInterface) *Txn {
	return &Txn{
		db:    db,
		cs:    NewChangeSet(),
		reads: make(map[string]any),
	}
}

func (t *Txn) ChangeSet() *ChangeSet {
	return t.cs
}

func (t *Txn) Commit(ctx context.Context) error {
	if t.cs.Len() == 0 {
		return nil
	}
	return t.db.Commit(ctx, t.cs)
}

// get returns the pending or cached version of a document, loading it once
// otherwise. Repeated reads hand out the same pointer.
func get[T any](t *Txn, collection string, id any, load func() (*T, error)) (*T, error) {
	if m, ok := t.cs.lookup(collection, id); ok {
		if m.IsDelete() {
			return nil, &NotFoundError{Collection: collection, ID: id}
		}
		return m.Doc.(*T), nil
	}

	key := mutationKey(collection, id)
	if cached, ok := t.reads[key]; ok {
		return cached.(*T), nil
	}

	doc, err := load()
	if err != nil {
		return nil, err
	}
	t.reads[key] = doc
	return doc, nil
}

func (t *Txn) GlobalConfig(ctx context.Context) (*model.GlobalConfigDocument, error) {
	return get(t, model.GlobalConfigCollection, model.GlobalConfigID, func() (*model.GlobalConfigDocument, error) {
		return t.db.GetGlobalConfig(ctx)
	})
}

func (t *Txn) PutGlobalConfig(doc *model.GlobalConfigDocument) {
	t.cs.Put(model.GlobalConfigCollection, doc.ID, doc)
}

func (t *Txn) BridgeConfig(ctx context.Context) (*model.BridgeConfigDocument, error) {
	return get(t, model.BridgeConfigCollection, model.BridgeConfigID, func() (*model.BridgeConfigDocument, error) {
		return t.db.GetBridgeConfig(ctx)
	})
}

func (t *Txn) PutBridgeConfig(doc *model.BridgeConfigDocument) {
	t.cs.Put(model.BridgeConfigCollection, doc.ID, doc)
}

func (t *Txn) Role(ctx context.Context, identity solana.PublicKey, role types.Role) (*model.RoleDocument, error) {
	return get(t, model.RoleCollection, model.RoleID(identity, role), func() (*model.RoleDocument, error) {
		return t.db.GetRole(ctx, identity, role)
	})
}

func (t *Txn) PutRole(doc *model.RoleDocument) {
	t.cs.Put(model.RoleCollection, doc.ID, doc)
}

func (t *Txn) DeleteRole(identity solana.PublicKey, role types.Role) {
	t.cs.Delete(model.RoleCollection, model.RoleID(identity, role))
}

func (t *Txn) PendingPayout(ctx context.Context, identity solana.PublicKey) (*model.PendingPayoutDocument, error) {
	return get(t, model.PendingPayoutCollection, identity.String(), func() (*model.PendingPayoutDocument, error) {
		return t.db.GetPendingPayout(ctx, identity)
	})
}

func (t *Txn) PutPendingPayout(doc *model.PendingPayoutDocument) {
	t.cs.Put(model.PendingPayoutCollection, doc.ID, doc)
}

func (t *Txn) DeletePendingPayout(identity solana.PublicKey) {
	t.cs.Delete(model.PendingPayoutCollection, identity.String())
}

func (t *Txn) AssetApproval(ctx context.Context, mint solana.PublicKey) (*model.AssetApprovalDocument, error) {
	return get(t, model.AssetApprovalCollection, mint.String(), func() (*model.AssetApprovalDocument, error) {
		return t.db.GetAssetApproval(ctx, mint)
	})
}

func (t *Txn) PutAssetApproval(doc *model.AssetApprovalDocument) {
	t.cs.Put(model.AssetApprovalCollection, doc.ID, doc)
}

func (t *Txn) DeleteAssetApproval(mint solana.PublicKey) {
	t.cs.Delete(model.AssetApprovalCollection, mint.String())
}

func (t *Txn) Tournament(ctx context.Context, id uint32) (*model.TournamentDocument, error) {
	return get(t, model.TournamentCollection, id, func() (*model.TournamentDocument, error) {
		return t.db.GetTournament(ctx, id)
	})
}

func (t *Txn) PutTournament(doc *model.TournamentDocument) {
	t.cs.Put(model.TournamentCollection, doc.ID, doc)
}

func (t *Txn) Team(ctx context.Context, tournamentID uint32, captain solana.PublicKey) (*model.TeamDocument, error) {
	return get(t, model.TeamCollection, model.TeamID(tournamentID, captain), func() (*model.TeamDocument, error) {
		return t.db.GetTeam(ctx, tournamentID, captain)
	})
}

func (t *Txn) PutTeam(doc *model.TeamDocument) {
	t.cs.Put(model.TeamCollection, doc.ID, doc)
}

// TeamsByTournament merges stored teams with teams written in this txn.
func (t *Txn) TeamsByTournament(ctx context.Context, tournamentID uint32) ([]*model.TeamDocument, error) {
	stored, err := t.db.FindTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stored))
	teams := make([]*model.TeamDocument, 0, len(stored))
	for _, team := range stored {
		seen[team.ID] = true
		current, err := get(t, model.TeamCollection, team.ID, func() (*model.TeamDocument, error) {
			return team, nil
		})
		if err != nil {
			if IsNotFoundError(err) {
				continue
			}
			return nil, err
		}
		teams = append(teams, current)
	}

	for _, m := range t.cs.Mutations() {
		if m.Collection != model.TeamCollection || m.IsDelete() {
			continue
		}
		team := m.Doc.(*model.TeamDocument)
		if team.TournamentID != tournamentID || seen[team.ID] {
			continue
		}
		teams = append(teams, team)
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Seq < teams[j].Seq
	})
	return teams, nil
}

func (t *Txn) TokenAccount(ctx context.Context, owner, mint solana.PublicKey) (*model.TokenAccountDocument, error) {
	return get(t, model.TokenAccountCollection, model.TokenAccountID(owner, mint), func() (*model.TokenAccountDocument, error) {
		return t.db.GetTokenAccount(ctx, owner, mint)
	})
}

func (t *Txn) PutTokenAccount(doc *model.TokenAccountDocument) {
	t.cs.Put(model.TokenAccountCollection, doc.ID, doc)
}
