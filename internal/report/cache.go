package report

import (
	"encoding/binary"
	"hash/fnv"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// Cache memoises Build results keyed by a hash of the snapshot content and
// the reference month.
type Cache struct {
	entries *lru.Cache[uint64, Dashboard]
}

func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[uint64, Dashboard](size)
	if err != nil {
		return nil, err
	}

	return &Cache{entries: entries}, nil
}

func (c *Cache) Dashboard(snapshot []transaction.Transaction, ref time.Time) Dashboard {
	key := contentKey(snapshot, ref)

	d, ok := c.entries.Get(key)
	if !ok {
		d = Build(snapshot, ref)
		c.entries.Add(key, d)
	}

	return Dashboard{
		Totals:     d.Totals,
		Categories: slices.Clone(d.Categories),
		Months:     slices.Clone(d.Months),
	}
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

func contentKey(snapshot []transaction.Transaction, ref time.Time) uint64 {
	h := fnv.New64a()

	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(ref.Year()*12+int(ref.Month())))
	h.Write(buf[:])

	for _, tx := range snapshot {
		for _, field := range []string{
			tx.ID,
			string(tx.Type),
			tx.Amount.String(),
			tx.Category,
			tx.Description,
			tx.Date.Format(time.DateOnly),
		} {
			h.Write([]byte(field))
			h.Write([]byte{0})
		}
	}

	return h.Sum64()
}
