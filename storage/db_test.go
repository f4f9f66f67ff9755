package storage

import "testing"

func TestCleanupOldEstimatesNoRetention(t *testing.T) {
	// A non-positive retention means estimates are kept forever, so the
	// call must return without ever touching the database.
	cases := []struct {
		name          string
		retentionDays int
	}{
		{"zero retention", 0},
		{"negative retention", -30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := CleanupOldEstimates(nil, tc.retentionDays)
			if err != nil {
				t.Fatalf("CleanupOldEstimates(nil, %d) error: %v", tc.retentionDays, err)
			}
			if n != 0 {
				t.Errorf("CleanupOldEstimates(nil, %d) = %d, want 0", tc.retentionDays, n)
			}
		})
	}
}
