/*
Package oracle implements an off-chain node answering flight status requests
of the FlightSurety application contract on behalf of several registered
oracle accounts.

The node does not fetch real flight data: reported statuses come from a
configured StatusSource. Each OracleRequest event is answered by every
local oracle sharing at least one index with the request.
*/
package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/flightsurety/surety-contract/contracts/suretydata/flightstatus"
	rpcapp "github.com/flightsurety/surety-contract/rpc/suretyapp"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// StatusSource decides which status is reported for the requested flight.
type StatusSource interface {
	Status(*rpcapp.OracleRequestEvent) flightstatus.Type
}

type fixedStatus flightstatus.Type

func (s fixedStatus) Status(*rpcapp.OracleRequestEvent) flightstatus.Type {
	return flightstatus.Type(s)
}

// FixedStatus returns StatusSource always reporting s.
func FixedStatus(s flightstatus.Type) StatusSource {
	return fixedStatus(s)
}

type randomStatus struct {
	mtx sync.Mutex
	rnd *rand.Rand
}

func (s *randomStatus) Status(*rpcapp.OracleRequestEvent) flightstatus.Type {
	final := flightstatus.Final()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	return final[s.rnd.Intn(len(final))]
}

// RandomStatus returns StatusSource reporting uniformly distributed final
// statuses. All oracles of the node report the same status per request.
func RandomStatus(seed int64) StatusSource {
	return &randomStatus{rnd: rand.New(rand.NewSource(seed))}
}

// statusMemoSize limits the number of recent requests the node keeps
// reported statuses for.
const statusMemoSize = 1024

// requestStatus makes repeated events of the same request get the same
// status. Only the most recent requests are remembered.
type requestStatus struct {
	src StatusSource

	mtx  sync.Mutex
	memo *lru.Cache[int64, flightstatus.Type]
}

func newRequestStatus(src StatusSource, size int) *requestStatus {
	memo, err := lru.New[int64, flightstatus.Type](size)
	if err != nil {
		panic(fmt.Errorf("init status memo: %w", err))
	}

	return &requestStatus{src: src, memo: memo}
}

func (s *requestStatus) status(ev *rpcapp.OracleRequestEvent) flightstatus.Type {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	st, ok := s.memo.Get(ev.RequestID)
	if !ok {
		st = s.src.Status(ev)
		s.memo.Add(ev.RequestID, st)
	}

	return st
}

// Submitter sends oracle responses to the application contract.
type Submitter interface {
	SubmitOracleResponse(oracle util.Uint160, requestID int64, flightKey util.Uint256, status flightstatus.Type) (util.Uint256, uint32, error)
}

// Account is a registered oracle served by the node.
type Account struct {
	Address   util.Uint160
	Indexes   []int
	Submitter Submitter
}

// Prm groups parameters of the Node.
type Prm struct {
	Logger *zap.Logger

	Accounts []Account

	Source StatusSource

	// Throttles response submission. Unlimited if nil.
	Limiter *rate.Limiter
}

// Node answers oracle requests.
type Node struct {
	log      *zap.Logger
	accounts []Account
	statuses *requestStatus
	limiter  *rate.Limiter
}

// New creates Node. Accounts must be registered in the application contract.
func New(prm Prm) *Node {
	limiter := prm.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	return &Node{
		log:      prm.Logger,
		accounts: prm.Accounts,
		statuses: newRequestStatus(prm.Source, statusMemoSize),
		limiter:  limiter,
	}
}

// Handle answers the request by every matching local oracle and returns the
// number of sent responses. Failure of one oracle does not prevent others
// from answering, all failures are returned joined.
func (n *Node) Handle(ctx context.Context, ev *rpcapp.OracleRequestEvent) (int, error) {
	status := n.statuses.status(ev)
	log := n.log.With(
		zap.Int64("request", ev.RequestID),
		zap.String("flight key", FlightKeyString(ev.FlightKey)),
		zap.String("flight", ev.Flight),
		zap.Stringer("status", status))

	var (
		sent int
		errs []error
	)

	for i := range n.accounts {
		acc := &n.accounts[i]
		if !Matches(acc.Indexes, ev.Indexes) {
			continue
		}

		if err := n.limiter.Wait(ctx); err != nil {
			errs = append(errs, err)
			break
		}

		txHash, vub, err := acc.Submitter.SubmitOracleResponse(acc.Address, ev.RequestID, ev.FlightKey, status)
		if err != nil {
			log.Warn("failed to submit oracle response", zap.Stringer("oracle", acc.Address), zap.Error(err))
			errs = append(errs, fmt.Errorf("oracle %s: %w", acc.Address.StringLE(), err))
			continue
		}

		log.Debug("oracle response sent",
			zap.Stringer("oracle", acc.Address), zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

		sent++
	}

	if sent == 0 && len(errs) == 0 {
		log.Debug("no local oracle matches the request")
	}

	return sent, errors.Join(errs...)
}

// Run handles events until the context is done or the channel is closed.
func (n *Node) Run(ctx context.Context, events <-chan *rpcapp.OracleRequestEvent) error {
	n.log.Info("oracle node started", zap.Int("oracles", len(n.accounts)))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return errors.New("event channel is closed")
			}

			sent, err := n.Handle(ctx, ev)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				n.log.Error("failed to handle oracle request", zap.Int64("request", ev.RequestID), zap.Error(err))
				continue
			}

			n.log.Info("oracle request handled", zap.Int64("request", ev.RequestID), zap.Int("responses", sent))
		}
	}
}

// Matches checks whether oracle indexes share at least one value with
// request indexes.
func Matches(oracle, request []int) bool {
	for i := range oracle {
		if slices.Contains(request, oracle[i]) {
			return true
		}
	}

	return false
}

// FlightKeyString returns text form of the flight key.
func FlightKeyString(key util.Uint256) string {
	return base58.Encode(key.BytesBE())
}

// ParseFlightKey decodes flight key from its text form.
func ParseFlightKey(s string) (util.Uint256, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("decode base58: %w", err)
	}

	return util.Uint256DecodeBytesBE(b)
}
