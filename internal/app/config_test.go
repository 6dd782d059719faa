package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	t.Cleanup(log.Sync)
	return log
}

func TestLoadStatsPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := []byte(`
reference_year: 2025
membership_count_types:
  - member
  - visitor
attendance_window_weeks: 12
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("STATS_POLICY_FILE", path)

	policy := loadStatsPolicy(newTestLogger(t))
	require.Equal(t, 2025, policy.ReferenceYear)
	require.Equal(t, []string{"member", "visitor"}, policy.MembershipCountTypes)
	require.Equal(t, 12, policy.AttendanceWindowWeeks)
}

func TestStatsPolicyEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reference_year: 2024\n"), 0o600))
	t.Setenv("STATS_POLICY_FILE", path)
	t.Setenv("STATS_REFERENCE_YEAR", "2026")
	t.Setenv("STATS_MEMBERSHIP_COUNT_TYPES", "member, relative")

	policy := loadStatsPolicy(newTestLogger(t))
	require.Equal(t, 2026, policy.ReferenceYear)
	require.Equal(t, []string{"member", "relative"}, policy.MembershipCountTypes)
}

func TestStatsPolicyMissingFileFallsBack(t *testing.T) {
	t.Setenv("STATS_POLICY_FILE", "/nonexistent/policy.yaml")
	policy := loadStatsPolicy(newTestLogger(t))
	require.Zero(t, policy.ReferenceYear)
	require.Zero(t, policy.AttendanceWindowWeeks)
	require.Empty(t, policy.MembershipCountTypes)
}
