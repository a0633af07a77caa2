package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestMetaDiscover(t *testing.T) {
	t.Parallel()

	src := &fakeSource{titles: []string{
		"FIN_TYouth_FEV-26",
		"AUDITORIA_JAN-26",
		"UPDATES - Jan-26",
		"AUDITORIA_FEV-26",
		"FOLHA_CLT_FEV-26",
		"Atualizações FEV-26",
		"FIN_TBrands_FEV-26",
	}}
	s := NewMetaService(src, zap.NewNop())

	got, err := s.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	if !got.OK {
		t.Fatalf("ok = false")
	}
	if want := []string{"FEV-26", "JAN-26"}; !reflect.DeepEqual(got.Auditorias, want) {
		t.Fatalf("auditorias = %v, want %v", got.Auditorias, want)
	}
	if want := []string{"FIN_TBrands_FEV-26", "FIN_TYouth_FEV-26"}; !reflect.DeepEqual(got.Fins, want) {
		t.Fatalf("fins = %v, want %v", got.Fins, want)
	}
	if want := []string{"Atualizações FEV-26", "UPDATES - Jan-26"}; !reflect.DeepEqual(got.Updates, want) {
		t.Fatalf("updates = %v, want %v", got.Updates, want)
	}
}

func TestMetaDiscoverError(t *testing.T) {
	t.Parallel()

	s := NewMetaService(&fakeSource{err: errors.New("backend gone")}, zap.NewNop())
	if _, err := s.Discover(context.Background()); err == nil {
		t.Fatalf("Discover() error = nil, want upstream error")
	}
}
