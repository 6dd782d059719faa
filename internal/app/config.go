package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/envutil"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	StatsPolicy    domainagg.StatsPolicy
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           envutil.String("PORT", "8080"),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 86400)) * time.Second,
		StatsPolicy:    loadStatsPolicy(log),
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set; using insecure default")
	}
	return cfg
}

// loadStatsPolicy reads the recomputation policy from STATS_POLICY_FILE when
// set; individual env vars override file values.
func loadStatsPolicy(log *logger.Logger) domainagg.StatsPolicy {
	var policy domainagg.StatsPolicy

	if path := envutil.String("STATS_POLICY_FILE", ""); path != "" {
		if err := readPolicyFile(path, &policy); err != nil {
			log.Warn("could not read stats policy file; using defaults", "path", path, "error", err)
		} else {
			log.Info("loaded stats policy", "path", path)
		}
	}

	if y := envutil.Int("STATS_REFERENCE_YEAR", 0); y > 0 {
		policy.ReferenceYear = y
	}
	if raw := envutil.String("STATS_MEMBERSHIP_COUNT_TYPES", ""); raw != "" {
		policy.MembershipCountTypes = policy.MembershipCountTypes[:0]
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				policy.MembershipCountTypes = append(policy.MembershipCountTypes, t)
			}
		}
	}
	if w := envutil.Int("STATS_ATTENDANCE_WINDOW_WEEKS", 0); w > 0 {
		policy.AttendanceWindowWeeks = w
	}
	return policy
}

func readPolicyFile(path string, policy *domainagg.StatsPolicy) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, policy); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
