package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/sheets"
)

// MetaService discovers which periods and tabs exist in the workbook.
type MetaService struct {
	src    sheets.Source
	logger *zap.Logger
}

func NewMetaService(src sheets.Source, logger *zap.Logger) *MetaService {
	return &MetaService{src: src, logger: logger.Named("meta-service")}
}

// Meta lists the discovered accounting periods, finance tabs and update tabs.
type Meta struct {
	OK         bool     `json:"ok"`
	Auditorias []string `json:"auditorias"`
	Fins       []string `json:"fins"`
	Updates    []string `json:"updates"`
}

// Discover scans tab titles. Periods come from AUDITORIA_ tabs with the
// prefix stripped.
func (s *MetaService) Discover(ctx context.Context) (*Meta, error) {
	titles, err := s.src.Titles(ctx)
	if err != nil {
		return nil, fmt.Errorf("meta: list tabs: %w", err)
	}

	out := &Meta{OK: true, Auditorias: []string{}, Fins: []string{}, Updates: []string{}}
	for _, t := range titles {
		switch {
		case strings.HasPrefix(t, "AUDITORIA_"):
			out.Auditorias = append(out.Auditorias, strings.TrimPrefix(t, "AUDITORIA_"))
		case strings.HasPrefix(t, "FIN_"):
			out.Fins = append(out.Fins, t)
		case sheets.IsUpdatesSheet(t):
			out.Updates = append(out.Updates, t)
		}
	}

	sort.Strings(out.Auditorias)
	sort.Strings(out.Fins)
	sort.Strings(out.Updates)
	return out, nil
}
