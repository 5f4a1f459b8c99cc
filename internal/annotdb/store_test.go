// internal/annotdb/store_test.go
package annotdb

import (
	"path/filepath"
	"testing"

	"pzdehmm-core/annot"
)

func TestBuildAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annot.db")
	ko := annot.Map{"abh_1": "K01046", "mhetase": "K21104"}
	sym := annot.Map{"abh_1": "pzdA"}

	if err := Build(path, ko, sym); err != nil {
		t.Fatalf("Build: %v", err)
	}
	gotKO, gotSym, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(gotKO) != 2 || gotKO.Get("abh_1") != "K01046" || gotKO.Get("mhetase") != "K21104" {
		t.Fatalf("ko map: %v", gotKO)
	}
	if len(gotSym) != 1 || gotSym.Get("abh_1") != "pzdA" {
		t.Fatalf("symbol map: %v", gotSym)
	}
	if gotSym.Get("mhetase") != annot.Sentinel {
		t.Fatalf("miss must yield sentinel")
	}
}

func TestBuildOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annot.db")
	if err := Build(path, annot.Map{"abh_1": "K00001"}, annot.Map{}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := Build(path, annot.Map{"abh_1": "K99999"}, annot.Map{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	ko, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ko.Get("abh_1") != "K99999" {
		t.Fatalf("rebuild must overwrite: %v", ko)
	}
}
