package ports

import "context"

// Statistics is the aggregate snapshot behind /api/admin/statistics.
type Statistics struct {
	TotalViolations  int64
	Pending          int64
	Processed        int64
	Paid             int64
	RevenueCollected float64
	TotalCameras     int64
	ActiveCameras    int64
	RegisteredUsers  int64
}

type StatsService interface {
	Snapshot(ctx context.Context) (*Statistics, error)
}
