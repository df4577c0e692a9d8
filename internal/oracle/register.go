package oracle

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

// Registry manages oracle registration in the application contract.
type Registry interface {
	IsOracleRegistered(oracle util.Uint160) (bool, error)
	GetMyIndexes(oracle util.Uint160) ([]int, error)
	RegisterOracle(oracle util.Uint160) (util.Uint256, uint32, error)
}

// WaitFunc waits for the transaction to be successfully accepted.
type WaitFunc func(ctx context.Context, txHash util.Uint256, vub uint32) error

// Register registers the oracle unless it is already registered and returns
// its indexes.
func Register(ctx context.Context, log *zap.Logger, r Registry, wait WaitFunc, oracle util.Uint160) ([]int, error) {
	registered, err := r.IsOracleRegistered(oracle)
	if err != nil {
		return nil, fmt.Errorf("check oracle registration: %w", err)
	}

	if !registered {
		txHash, vub, err := r.RegisterOracle(oracle)
		if err != nil {
			return nil, fmt.Errorf("send registration transaction: %w", err)
		}

		log.Info("oracle registration sent, waiting...", zap.Stringer("oracle", oracle), zap.Stringer("tx", txHash))

		if err = wait(ctx, txHash, vub); err != nil {
			return nil, fmt.Errorf("register oracle: %w", err)
		}
	}

	indexes, err := r.GetMyIndexes(oracle)
	if err != nil {
		return nil, fmt.Errorf("read oracle indexes: %w", err)
	}

	log.Info("oracle is registered", zap.Stringer("oracle", oracle), zap.Ints("indexes", indexes))

	return indexes, nil
}
