package db

import "fmt"

// Mutation replaces the document stored under ID, or deletes it when Doc is nil.
type Mutation struct {
	Collection string
	ID         any
	Doc        any
}

func (m Mutation) IsDelete() bool {
	return m.Doc == nil
}

// ChangeSet collects the writes of one operation. A later write to the same
// document supersedes the earlier one but keeps its position.
type ChangeSet struct {
	order     []string
	mutations map[string]*Mutation
}

func NewChangeSet() *ChangeSet {
	return &ChangeSet{mutations: make(map[string]*Mutation)}
}

func mutationKey(collection string, id any) string {
	return fmt.Sprintf("%s/%v", collection, id)
}

func (c *ChangeSet) Put(collection string, id any, doc any) {
	if doc == nil {
		panic("nil document in change set, use Delete")
	}
	c.set(&Mutation{Collection: collection, ID: id, Doc: doc})
}

func (c *ChangeSet) Delete(collection string, id any) {
	c.set(&Mutation{Collection: collection, ID: id})
}

func (c *ChangeSet) set(m *Mutation) {
	key := mutationKey(m.Collection, m.ID)
	if _, ok := c.mutations[key]; !ok {
		c.order = append(c.order, key)
	}
	c.mutations[key] = m
}

func (c *ChangeSet) lookup(collection string, id any) (*Mutation, bool) {
	m, ok := c.mutations[mutationKey(collection, id)]
	return m, ok
}

// Mutations returns the pending writes in first-write order.
func (c *ChangeSet) Mutations() []Mutation {
	res := make([]Mutation, 0, len(c.order))
	for _, key := range c.order {
		res = append(res, *c.mutations[key])
	}
	return res
}

func (c *ChangeSet) Len() int {
	return len(c.order)
}
