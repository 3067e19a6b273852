package blockchain

import (
	"math/big"

	"github.com/trebuchet-org/govrelay/internal/adapters/blockchain/bindings"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

// DAOEncoder encodes DAO calls carried inside forward requests
type DAOEncoder struct {
	dao *bindings.DAOVoting
}

// NewDAOEncoder creates a DAO call encoder
func NewDAOEncoder() *DAOEncoder {
	return &DAOEncoder{dao: bindings.NewDAOVoting()}
}

// PackVote encodes vote(id, voteType)
func (e *DAOEncoder) PackVote(id uint64, vote domain.VoteType) []byte {
	return e.dao.PackVote(new(big.Int).SetUint64(id), uint8(vote))
}

// Ensure the encoder implements the interface
var _ usecase.CallEncoder = (*DAOEncoder)(nil)
