package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/pkg/postgres"
)

// AppContext holds the shared application dependencies. The root command
// fills the fields in its PersistentPreRunE, before any RunE executes.
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return date, nil
}

func parseVersion(s string) (int, error) {
	version, err := strconv.Atoi(s)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("invalid version %q: expected a positive number", s)
	}
	return version, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
