package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Work directory: "+env.cfg.Paths.WorkDir)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target, "")
	if err != nil {
		t.Fatalf("validate sample config: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigValidateReportsDefaults(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "absent.toml")

	out, _, err := runCLI(t, []string{"config", "validate"}, missing, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := filepath.Join(env.baseDir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[logging]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "validate"}, bad, ""); err == nil {
		t.Fatal("expected validation error")
	}
}
