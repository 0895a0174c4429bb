package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	coreXRPLBaseFeeMetricName        = "core_xrpl_base_fee"
	pendingOperationsMetricName      = "pending_operations"
	transactionEvidencesMetricName   = "transaction_evidences"
	freeTicketsMetricName            = "free_tickets"
	bridgeStateMetricName            = "bridge_state"
	relayerFeesClaimableMetricName   = "relayer_fees_claimable"
	hostTokenEscrowMetricName        = "host_token_escrow"
	hostTokenMirroredSupplyMetricName = "host_token_mirrored_supply"

	// OperationIDLabel is operation ID label.
	OperationIDLabel = "operation_id"
	// EvidenceHashLabel is evidence hash label.
	EvidenceHashLabel = "evidence_hash"
	// RelayerHostAddressLabel is the relayer's Host-chain address label.
	RelayerHostAddressLabel = "relayer_host_address"
	// HostDenomLabel is Host denom label.
	HostDenomLabel = "host_denom"
)

// Registry contains the bridge core's Prometheus metrics. It deliberately carries no gauge that
// needs a live XRPL RPC connection, a Host bank/tx query client, or a transaction-history scan --
// package bridge has no network clients of its own (spec.md §4.10/§4.11: those belong to the
// ports a wrapping chain module supplies), so every gauge here is populated from bridge.Core's
// own in-process state.
type Registry struct {
	CoreXRPLBaseFeeGauge         prometheus.Gauge
	PendingOperationsGaugeVec    *prometheus.GaugeVec
	TransactionEvidencesGaugeVec *prometheus.GaugeVec
	FreeTicketsGauge             prometheus.Gauge
	BridgeStateGauge             prometheus.Gauge
	RelayerFeesClaimableGaugeVec *prometheus.GaugeVec
	HostTokenEscrowGaugeVec      *prometheus.GaugeVec
	HostTokenMirroredSupplyGaugeVec *prometheus.GaugeVec
}

// NewRegistry returns new metric registry.
func NewRegistry() *Registry {
	return &Registry{
		CoreXRPLBaseFeeGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: coreXRPLBaseFeeMetricName,
			Help: "Bridge config's current XRPL base fee",
		}),
		PendingOperationsGaugeVec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: pendingOperationsMetricName,
			Help: "Pending operations, value is the number of signatures collected so far",
		},
			[]string{OperationIDLabel},
		),
		TransactionEvidencesGaugeVec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: transactionEvidencesMetricName,
			Help: "In-flight transaction evidences, value is the number of attesting relayers",
		},
			[]string{EvidenceHashLabel},
		),
		FreeTicketsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: freeTicketsMetricName,
			Help: "XRPL tickets currently available in the bridge's ticket pool",
		}),
		BridgeStateGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: bridgeStateMetricName,
			Help: "Bridge state, 1 is Active, 0 is Halted",
		}),
		RelayerFeesClaimableGaugeVec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: relayerFeesClaimableMetricName,
			Help: "Relayer bridging fees currently claimable",
		},
			[]string{RelayerHostAddressLabel, HostDenomLabel},
		),
		HostTokenEscrowGaugeVec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: hostTokenEscrowMetricName,
			Help: "Host-originated token amount currently escrowed pending XRPL confirmation",
		},
			[]string{HostDenomLabel},
		),
		HostTokenMirroredSupplyGaugeVec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: hostTokenMirroredSupplyMetricName,
			Help: "XRPL-originated token supply currently mirrored on Host",
		},
			[]string{HostDenomLabel},
		),
	}
}

// Register registers all the metrics to prometheus.
func (m *Registry) Register(registry prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.CoreXRPLBaseFeeGauge,
		m.PendingOperationsGaugeVec,
		m.TransactionEvidencesGaugeVec,
		m.FreeTicketsGauge,
		m.BridgeStateGauge,
		m.RelayerFeesClaimableGaugeVec,
		m.HostTokenEscrowGaugeVec,
		m.HostTokenMirroredSupplyGaugeVec,
	}

	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return errors.Wrapf(err, "failed to register metric collector")
		}
	}

	return nil
}
