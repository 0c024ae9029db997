package ledger

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	RecordTransaction(txType string, amount float64)
	RecordBalanceChange(userID uint, oldBalance, newBalance float64)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransaction(string, float64)          {}
func (n *NoopMetricsCollector) RecordBalanceChange(uint, float64, float64) {}
func (n *NoopMetricsCollector) RecordError(string, string)                 {}
