package bindings

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// GetEventID returns the event signature hash for a given event name
// This is a helper method that works alongside the generated ABI bindings
func (dAOVoting *DAOVoting) GetEventID(eventName string) (common.Hash, error) {
	event, exists := dAOVoting.abi.Events[eventName]
	if !exists {
		return common.Hash{}, fmt.Errorf("event %s not found", eventName)
	}
	return event.ID, nil
}

// MethodName returns the name of the DAO method selected by calldata
func (dAOVoting *DAOVoting) MethodName(data []byte) (string, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("calldata too short: %d bytes", len(data))
	}
	method, err := dAOVoting.abi.MethodById(data[:4])
	if err != nil {
		return "", err
	}
	return method.Name, nil
}

// DecodeVote decodes vote(uint256,uint8) calldata
func (dAOVoting *DAOVoting) DecodeVote(data []byte) (*big.Int, uint8, error) {
	name, err := dAOVoting.MethodName(data)
	if err != nil {
		return nil, 0, err
	}
	if name != "vote" {
		return nil, 0, fmt.Errorf("calldata selects %s, not vote", name)
	}
	args, err := dAOVoting.abi.Methods["vote"].Inputs.Unpack(data[4:])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode vote arguments: %w", err)
	}
	proposalID, ok := args[0].(*big.Int)
	if !ok {
		return nil, 0, fmt.Errorf("unexpected proposal id type %T", args[0])
	}
	voteType, ok := args[1].(uint8)
	if !ok {
		return nil, 0, fmt.Errorf("unexpected vote type %T", args[1])
	}
	return proposalID, voteType, nil
}

// ToForwardRequest copies a request into the forwarder's tuple type
func ToForwardRequest(from, to common.Address, value, gas, nonce *big.Int, data []byte) MinimalForwarderForwardRequest {
	return MinimalForwarderForwardRequest{
		From:  from,
		To:    to,
		Value: value,
		Gas:   gas,
		Nonce: nonce,
		Data:  data,
	}
}
