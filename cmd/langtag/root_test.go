/*
Copyright 2025 Langtag Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// runCommand executes the root command with the given stdin and arguments,
// returning stdout, stderr, and the execution error.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCanonCmd(t *testing.T) {
	out, _, err := runCommand(t, "", "canon", "zh-cmn-Hans-CN", "en-latn-us", "i-klingon")
	if err != nil {
		t.Fatalf("canon failed: %v", err)
	}
	want := "cmn-Hans-CN\nen-US\ntlh\n"
	if out != want {
		t.Errorf("canon output = %q, want %q", out, want)
	}
}

func TestCanonCmd_Stdin(t *testing.T) {
	out, _, err := runCommand(t, "en_US\n\niw\n", "canon")
	if err != nil {
		t.Fatalf("canon failed: %v", err)
	}
	want := "en-US\nhe\n"
	if out != want {
		t.Errorf("canon output = %q, want %q", out, want)
	}
}

func TestCanonCmd_JSON(t *testing.T) {
	out, _, err := runCommand(t, "", "canon", "--format", "json", "art-lojban")
	if err != nil {
		t.Fatalf("canon failed: %v", err)
	}
	var results []canonResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	want := []canonResult{{Input: "art-lojban", Canonical: "jbo"}}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("canon JSON = %+v, want %+v", results, want)
	}
}

func TestCanonCmd_IllFormed(t *testing.T) {
	out, _, err := runCommand(t, "", "canon", "en--US", "fr")
	if err == nil {
		t.Fatal("canon with an ill-formed tag expected error, got none")
	}
	if !strings.Contains(err.Error(), "1 of 2 tags failed to canonicalize") {
		t.Errorf("unexpected error: %v", err)
	}
	// The well-formed tag is still canonicalized.
	if out != "fr\n" {
		t.Errorf("canon output = %q, want %q", out, "fr\n")
	}
}

func TestCanonCmd_Fold(t *testing.T) {
	// Full-width input from copy-pasted text folds to ASCII under NFKC.
	out, _, err := runCommand(t, "", "canon", "--fold", "ｅｎ")
	if err != nil {
		t.Fatalf("canon --fold failed: %v", err)
	}
	if out != "en\n" {
		t.Errorf("canon output = %q, want %q", out, "en\n")
	}

	// Without folding the same input is not even well-formed.
	if _, _, err := runCommand(t, "", "canon", "ｅｎ"); err == nil {
		t.Error("canon without --fold expected error for full-width input, got none")
	}
}

func TestCheckCmd(t *testing.T) {
	out, _, err := runCommand(t, "", "check", "en-US", "zz-ZZ")
	if err == nil {
		t.Fatal("check expected error for unregistered tag, got none")
	}
	if !strings.Contains(err.Error(), "1 of 2 tags are not valid") {
		t.Errorf("unexpected error: %v", err)
	}
	want := "en-US\twell-formed=true\tvalid=true\nzz-ZZ\twell-formed=true\tvalid=false\n"
	if out != want {
		t.Errorf("check output = %q, want %q", out, want)
	}
}

func TestCheckCmd_LevelWellFormed(t *testing.T) {
	// zz-ZZ is well-formed (the grammar does not consult the registry), so
	// at --level wellformed the command succeeds.
	if _, _, err := runCommand(t, "", "check", "--level", "wellformed", "zz-ZZ"); err != nil {
		t.Fatalf("check --level wellformed failed: %v", err)
	}

	_, _, err := runCommand(t, "", "check", "--level", "wellformed", "en--US")
	if err == nil {
		t.Fatal("check expected error for ill-formed tag, got none")
	}
	if !strings.Contains(err.Error(), "not well-formed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckCmd_JSON(t *testing.T) {
	out, _, err := runCommand(t, "", "check", "--format", "json", "en-US")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	var results []checkResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	want := []checkResult{{Tag: "en-US", WellFormed: true, Valid: true}}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("check JSON = %+v, want %+v", results, want)
	}
}

func TestPartsCmd(t *testing.T) {
	out, _, err := runCommand(t, "", "parts", "zh-cmn-Hans-CN")
	if err != nil {
		t.Fatalf("parts failed: %v", err)
	}
	for _, line := range []string{
		"tag:\tzh-cmn-Hans-CN",
		"language:\tzh",
		"extlangs:\tcmn",
		"script:\tHans",
		"region:\tCN",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("parts output missing %q:\n%s", line, out)
		}
	}
}

func TestPartsCmd_Grandfathered(t *testing.T) {
	out, _, err := runCommand(t, "", "parts", "i-klingon")
	if err != nil {
		t.Fatalf("parts failed: %v", err)
	}
	want := "tag:\ti-klingon\ngrandfathered:\ttrue\n"
	if out != want {
		t.Errorf("parts output = %q, want %q", out, want)
	}
}

func TestPartsCmd_JSON(t *testing.T) {
	out, _, err := runCommand(t, "", "parts", "-o", "json", "sl-rozaj-biske-x-private")
	if err != nil {
		t.Fatalf("parts failed: %v", err)
	}
	var results []tagParts
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	want := []tagParts{{
		Tag:        "sl-rozaj-biske-x-private",
		Language:   "sl",
		Variants:   []string{"rozaj", "biske"},
		PrivateUse: []string{"private"},
	}}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("parts JSON = %+v, want %+v", results, want)
	}
}

func TestTablesCmd(t *testing.T) {
	out, _, err := runCommand(t, "", "tables")
	if err != nil {
		t.Fatalf("tables failed: %v", err)
	}
	for _, line := range []string{"file date:", "languages:", "tag remaps:"} {
		if !strings.Contains(out, line) {
			t.Errorf("tables output missing %q:\n%s", line, out)
		}
	}
}

func TestRootCmd_CustomTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.json")
	bundle := `{"fileDate": "2030-01-01", "languages": ["en"], "regions": ["US"]}`
	if err := os.WriteFile(path, []byte(bundle), 0o600); err != nil {
		t.Fatalf("failed to write bundle: %v", err)
	}

	out, _, err := runCommand(t, "", "--tables", path, "tables")
	if err != nil {
		t.Fatalf("tables with custom bundle failed: %v", err)
	}
	if !strings.Contains(out, "2030-01-01") {
		t.Errorf("tables output does not show the custom file date:\n%s", out)
	}

	// The custom bundle has no remap tables, so nothing is rewritten.
	out, _, err = runCommand(t, "", "--tables", path, "canon", "EN-us")
	if err != nil {
		t.Fatalf("canon with custom bundle failed: %v", err)
	}
	if out != "en-US\n" {
		t.Errorf("canon output = %q, want %q", out, "en-US\n")
	}
}

func TestRootCmd_BadTablesPath(t *testing.T) {
	if _, _, err := runCommand(t, "", "--tables", "/nonexistent/tables.json", "tables"); err == nil {
		t.Fatal("expected error for missing tables bundle, got none")
	}
}

func Test_outputFormat_Set(t *testing.T) {
	var f outputFormat
	if err := f.Set("json"); err != nil {
		t.Errorf("Set(json) error: %v", err)
	}
	if f != formatJSON {
		t.Errorf("Set(json) got %q", f)
	}
	if err := f.Set("yaml"); err == nil {
		t.Error("Set(yaml) expected error, got none")
	}
}

func Test_checkLevel_Set(t *testing.T) {
	var l checkLevel
	if err := l.Set("wellformed"); err != nil {
		t.Errorf("Set(wellformed) error: %v", err)
	}
	if l != levelWellFormed {
		t.Errorf("Set(wellformed) got %q", l)
	}
	if err := l.Set("strict"); err == nil {
		t.Error("Set(strict) expected error, got none")
	}
}

func Test_writeParts(t *testing.T) {
	var b bytes.Buffer
	writeParts(&b, tagParts{
		Tag:      "de-CH-1901",
		Language: "de",
		Region:   "CH",
		Variants: []string{"1901"},
	})
	want := "tag:\tde-CH-1901\nlanguage:\tde\nregion:\tCH\nvariants:\t1901\n"
	if b.String() != want {
		t.Errorf("writeParts = %q, want %q", b.String(), want)
	}
}
