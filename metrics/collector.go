package metrics

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/CoreumFoundation/xrplbridge-core/bridge"
	"github.com/CoreumFoundation/xrplbridge-core/logger"
	"github.com/CoreumFoundation/xrplbridge-core/types"
)

// PeriodicCollectorConfig is PeriodicCollector config.
type PeriodicCollectorConfig struct {
	RepeatDelay time.Duration
}

// DefaultPeriodicCollectorConfig returns default PeriodicCollectorConfig.
func DefaultPeriodicCollectorConfig() PeriodicCollectorConfig {
	return PeriodicCollectorConfig{
		RepeatDelay: time.Minute,
	}
}

type gaugeVecValue struct {
	keys  []string
	value float64
}

// PeriodicCollector periodically snapshots a bridge.Core's in-process state into Prometheus
// gauges. Unlike the teacher's version, this never talks to a chain RPC or bank/tx query client:
// bridge.Core owns no network clients of its own (spec.md §4.10/§4.11 -- those live in the ports
// a wrapping chain module supplies), so every collector here only reads Core's own accessors.
type PeriodicCollector struct {
	cfg      PeriodicCollectorConfig
	log      logger.Logger
	registry *Registry
	core     *bridge.Core

	pendingOperationsCachedKeys    map[string]struct{}
	transactionEvidencesCachedKeys map[string]struct{}
	relayerFeesCachedKeys          map[string]struct{}
	hostTokenEscrowCachedKeys      map[string]struct{}
	hostTokenMirroredCachedKeys    map[string]struct{}
	cacheMu                        sync.Mutex
}

// NewPeriodicCollector returns a new instance of the PeriodicCollector.
func NewPeriodicCollector(
	cfg PeriodicCollectorConfig,
	log logger.Logger,
	registry *Registry,
	core *bridge.Core,
) *PeriodicCollector {
	return &PeriodicCollector{
		cfg:      cfg,
		log:      log,
		registry: registry,
		core:     core,

		pendingOperationsCachedKeys:    make(map[string]struct{}),
		transactionEvidencesCachedKeys: make(map[string]struct{}),
		relayerFeesCachedKeys:          make(map[string]struct{}),
		hostTokenEscrowCachedKeys:      make(map[string]struct{}),
		hostTokenMirroredCachedKeys:    make(map[string]struct{}),
	}
}

// Start runs every collector once per RepeatDelay until ctx is cancelled.
func (c *PeriodicCollector) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.cfg.RepeatDelay)
	defer ticker.Stop()

	c.collectOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.collectOnce(ctx)
		}
	}
}

func (c *PeriodicCollector) collectOnce(ctx context.Context) {
	collectors := []func(){
		c.collectBridgeState,
		c.collectCoreXRPLBaseFee,
		c.collectFreeTickets,
		c.collectPendingOperations,
		c.collectTransactionEvidences,
		c.collectRelayerFees,
		c.collectHostTokenBalances,
	}
	for _, collect := range collectors {
		collect()
	}
	c.log.Debug(ctx, "collected bridge metrics")
}

func (c *PeriodicCollector) collectBridgeState() {
	if c.core.BridgeState() == types.BridgeStateActive {
		c.registry.BridgeStateGauge.Set(1)
	} else {
		c.registry.BridgeStateGauge.Set(0)
	}
}

func (c *PeriodicCollector) collectCoreXRPLBaseFee() {
	c.registry.CoreXRPLBaseFeeGauge.Set(float64(c.core.Config.XRPLBaseFee))
}

func (c *PeriodicCollector) collectFreeTickets() {
	c.registry.FreeTicketsGauge.Set(float64(len(c.core.AvailableTickets())))
}

func (c *PeriodicCollector) collectPendingOperations() {
	currentValues := make(map[string]gaugeVecValue)
	var startAfter *uint32
	for {
		page, last := c.core.PendingOperationsPage(startAfter, 250)
		for _, op := range page {
			id := strconv.Itoa(int(op.ID()))
			currentValues[id] = gaugeVecValue{keys: []string{id}, value: float64(len(op.Signatures))}
		}
		if last == nil {
			break
		}
		startAfter = last
	}
	c.updateGaugeVecAndCachedValues(currentValues, c.pendingOperationsCachedKeys, c.registry.PendingOperationsGaugeVec)
}

func (c *PeriodicCollector) collectTransactionEvidences() {
	currentValues := make(map[string]gaugeVecValue)
	var startAfter *string
	for {
		page, last := c.core.TransactionEvidencesPage(startAfter, 250)
		for _, ev := range page {
			currentValues[ev.Hash] = gaugeVecValue{keys: []string{ev.Hash}, value: float64(len(ev.RelayerAddresses))}
		}
		if last == nil {
			break
		}
		startAfter = last
	}
	c.updateGaugeVecAndCachedValues(
		currentValues, c.transactionEvidencesCachedKeys, c.registry.TransactionEvidencesGaugeVec,
	)
}

func (c *PeriodicCollector) collectRelayerFees() {
	currentValues := make(map[string]gaugeVecValue)
	for _, relayer := range c.core.Config.Relayers {
		for _, coin := range c.core.FeesCollected(relayer.HostAddress) {
			key := strings.Join([]string{relayer.HostAddress.String(), coin.Denom}, "/")
			currentValues[key] = gaugeVecValue{
				keys:  []string{relayer.HostAddress.String(), coin.Denom},
				value: float64(coin.Amount.Int64()),
			}
		}
	}
	c.updateGaugeVecAndCachedValues(currentValues, c.relayerFeesCachedKeys, c.registry.RelayerFeesClaimableGaugeVec)
}

func (c *PeriodicCollector) collectHostTokenBalances() {
	escrow := make(map[string]gaugeVecValue)
	var startAfter *string
	for {
		page, last := c.core.HostTokensPage(startAfter, 250)
		for _, token := range page {
			amount := c.core.EscrowFor(token.HostDenom)
			escrow[token.HostDenom] = gaugeVecValue{keys: []string{token.HostDenom}, value: float64(amount.Int64())}
		}
		if last == nil {
			break
		}
		startAfter = last
	}
	c.updateGaugeVecAndCachedValues(escrow, c.hostTokenEscrowCachedKeys, c.registry.HostTokenEscrowGaugeVec)

	mirrored := make(map[string]gaugeVecValue)
	var xrplStartAfter *string
	for {
		page, last := c.core.XRPLTokensPage(xrplStartAfter, 250)
		for _, token := range page {
			amount := c.core.MirroredSupplyFor(token.HostDenom)
			mirrored[token.HostDenom] = gaugeVecValue{keys: []string{token.HostDenom}, value: float64(amount.Int64())}
		}
		if last == nil {
			break
		}
		xrplStartAfter = last
	}
	c.updateGaugeVecAndCachedValues(mirrored, c.hostTokenMirroredCachedKeys, c.registry.HostTokenMirroredSupplyGaugeVec)
}

func (c *PeriodicCollector) updateGaugeVecAndCachedValues(
	currentValues map[string]gaugeVecValue,
	cachedKeys map[string]struct{},
	gaugeVec *prometheus.GaugeVec,
) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	for k := range cachedKeys {
		if _, ok := currentValues[k]; !ok {
			delete(cachedKeys, k)
		}
	}
	for k, v := range currentValues {
		gaugeVec.WithLabelValues(v.keys...).Set(v.value)
		cachedKeys[k] = struct{}{}
	}
}
