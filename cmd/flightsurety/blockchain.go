package main

import (
	"context"
	"fmt"

	"github.com/flightsurety/surety-contract/internal/config"
	rpcapp "github.com/flightsurety/surety-contract/rpc/suretyapp"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// wrapper over Neo WebSocket RPC providing blockchain services needed for
// the commands.
type remoteBlockchain struct {
	rpc *rpcclient.WSClient
}

func dialBlockchain(ctx context.Context, c config.RPCConfig) (*remoteBlockchain, error) {
	cli, err := rpcclient.NewWS(ctx, c.Endpoint, rpcclient.WSOptions{
		Options: rpcclient.Options{
			DialTimeout:    c.DialTimeout,
			RequestTimeout: c.DialTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	if err = cli.Init(); err != nil {
		cli.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return &remoteBlockchain{rpc: cli}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

func (x *remoteBlockchain) actor(acc *wallet.Account) (*actor.Actor, error) {
	act, err := actor.NewSimple(x.rpc, acc)
	if err != nil {
		return nil, fmt.Errorf("init actor for %s: %w", acc.Address, err)
	}

	return act, nil
}

// subscribeOracleRequests subscribes to OracleRequest events of the
// application contract. Resulting channel is closed when connection is lost
// or ctx is done.
func (x *remoteBlockchain) subscribeOracleRequests(ctx context.Context, log *zap.Logger, app util.Uint160) (<-chan *rpcapp.OracleRequestEvent, error) {
	name := "OracleRequest"
	ch := make(chan *state.ContainedNotificationEvent)

	_, err := x.rpc.ReceiveExecutionNotifications(&neorpc.NotificationFilter{Contract: &app, Name: &name}, ch)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s events: %w", name, err)
	}

	out := make(chan *rpcapp.OracleRequestEvent)

	go forwardOracleRequests(ctx, log, ch, out)

	return out, nil
}

// forwardOracleRequests decodes notifications from in and sends them to out
// until in is closed or ctx is done. out is closed on return.
func forwardOracleRequests(ctx context.Context, log *zap.Logger, in <-chan *state.ContainedNotificationEvent, out chan<- *rpcapp.OracleRequestEvent) {
	defer close(out)

	for {
		var n *state.ContainedNotificationEvent
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				return
			}
			n = v
		}

		ev := new(rpcapp.OracleRequestEvent)
		if err := ev.FromStackItem(n.Item); err != nil {
			log.Warn("invalid OracleRequest event", zap.Stringer("tx", n.Container), zap.Error(err))
			continue
		}

		select {
		case <-ctx.Done():
			return
		case out <- ev:
		}
	}
}

// waitFunc returns function waiting for the transaction sent by act to be
// executed successfully.
func waitFunc(act *actor.Actor) func(ctx context.Context, txHash util.Uint256, vub uint32) error {
	return func(ctx context.Context, txHash util.Uint256, vub uint32) error {
		res, err := act.WaitAny(ctx, vub, txHash)
		if err != nil {
			return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
		}

		if res.VMState != vmstate.Halt {
			return fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
		}

		return nil
	}
}
