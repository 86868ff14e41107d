package storage

import (
	"fmt"

	"github.com/awnumar/memguard"

	"github.com/dmitrijs2005/pinkeeper/internal/common"
	"github.com/dmitrijs2005/pinkeeper/internal/models"
)

// userCache is the in-memory state of the current user. The salt is sealed
// in a memguard enclave and only opened for the duration of a copy.
type userCache struct {
	record models.UserRecord
	salt   *memguard.Enclave
}

// newUserCache takes ownership of salt; the slice is wiped.
func newUserCache(record models.UserRecord, salt []byte) (*userCache, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("empty salt")
	}
	return &userCache{record: record, salt: memguard.NewEnclave(salt)}, nil
}

func (c *userCache) saltCopy() ([]byte, error) {
	buf, err := c.salt.Open()
	if err != nil {
		return nil, fmt.Errorf("open salt enclave: %w", err)
	}
	defer buf.Destroy()
	return common.CloneBytes(buf.Bytes()), nil
}
