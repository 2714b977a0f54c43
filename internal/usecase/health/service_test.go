package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck(t *testing.T) {
	down := errors.New("conn refused")

	tests := []struct {
		name        string
		engineErr   error
		storageErr  error
		wantStatus  Status
		wantEngine  CheckResult
		wantStorage CheckResult
	}{
		{"all healthy", nil, nil, Healthy, CheckOK, CheckOK},
		{"engine down", down, nil, Degraded, CheckError, CheckOK},
		{"storage down", nil, down, Degraded, CheckOK, CheckError},
		{"both down", down, down, Unhealthy, CheckError, CheckError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(&mockPinger{err: tc.engineErr}, &mockPinger{err: tc.storageErr})
			r := svc.Check(context.Background())

			if r.Status != tc.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tc.wantStatus)
			}
			if r.Checks[ComponentSearchEngine] != tc.wantEngine {
				t.Errorf("search_engine = %q, want %q", r.Checks[ComponentSearchEngine], tc.wantEngine)
			}
			if r.Checks[ComponentStorage] != tc.wantStorage {
				t.Errorf("storage = %q, want %q", r.Checks[ComponentStorage], tc.wantStorage)
			}
		})
	}
}
