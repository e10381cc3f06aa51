package planner

import (
	"testing"

	"github.com/backmassage/seqpath/internal/config"
)

// --- Helper builders ---

func defaultCfg(op config.Operation) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Operation = op
	return &cfg
}

// --- set-version ---

func TestBuildPlan_SetVersion(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mutate     func(c *config.Config)
		wantAction Action
		wantOut    string
		wantReason string
	}{
		{
			name:       "file and folder",
			path:       "/show/v003/shot/comp_v003.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "004" },
			wantAction: ActionRename,
			wantOut:    "/show/v004/shot/comp_v004.0001.exr",
		},
		{
			name:       "file only when no folder version",
			path:       "/show/shot/comp_v3.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "4" },
			wantAction: ActionRename,
			wantOut:    "/show/shot/comp_v4.0001.exr",
		},
		{
			name:       "folder left alone with no-folder",
			path:       "/show/v3/comp_v3.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "4"; c.SetFolder = false },
			wantAction: ActionRename,
			wantOut:    "/show/v3/comp_v4.0001.exr",
		},
		{
			name:       "folder only",
			path:       "/show/v3/shot/plate.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "4" },
			wantAction: ActionRename,
			wantOut:    "/show/v4/shot/plate.0001.exr",
		},
		{
			name:       "pair",
			path:       "/show/comp_v3.2.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "4"; c.Minor = "0"; c.MajorMinor = true },
			wantAction: ActionRename,
			wantOut:    "/show/comp_v4.0.0001.exr",
		},
		{
			name:       "prefix override",
			path:       "/show/comp_v3.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "4"; c.VersionPrefix = "V" },
			wantAction: ActionRename,
			wantOut:    "/show/comp_V4.0001.exr",
		},
		{
			name:       "no version anywhere",
			path:       "/show/shot/plate.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "4" },
			wantAction: ActionSkip,
			wantOut:    "/show/shot/plate.0001.exr",
			wantReason: SkipNoVersion,
		},
		{
			name:       "only folder version but folder disabled",
			path:       "/show/v3/plate.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "4"; c.SetFolder = false },
			wantAction: ActionSkip,
			wantOut:    "/show/v3/plate.0001.exr",
			wantReason: SkipNoVersion,
		},
		{
			name:       "already at version",
			path:       "/show/comp_v4.0001.exr",
			mutate:     func(c *config.Config) { c.Version = "4" },
			wantAction: ActionSkip,
			wantOut:    "/show/comp_v4.0001.exr",
			wantReason: SkipUnchanged,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCfg(config.OpSetVersion)
			tt.mutate(cfg)
			plan, err := BuildPlan(cfg, tt.path)
			if err != nil {
				t.Fatalf("BuildPlan: %v", err)
			}
			if plan.Action != tt.wantAction {
				t.Errorf("Action = %s, want %s", plan.Action, tt.wantAction)
			}
			if plan.OutputPath != tt.wantOut {
				t.Errorf("OutputPath = %q, want %q", plan.OutputPath, tt.wantOut)
			}
			if plan.SkipReason != tt.wantReason {
				t.Errorf("SkipReason = %q, want %q", plan.SkipReason, tt.wantReason)
			}
			if plan.InputPath != tt.path {
				t.Errorf("InputPath = %q, want %q", plan.InputPath, tt.path)
			}
		})
	}
}

func TestBuildPlan_SetVersionInvalid(t *testing.T) {
	cfg := defaultCfg(config.OpSetVersion)
	cfg.Version = "four"
	if _, err := BuildPlan(cfg, "/show/comp_v3.exr"); err == nil {
		t.Fatal("expected error for non-digit version")
	}
}

func TestBuildPlan_Note(t *testing.T) {
	cfg := defaultCfg(config.OpSetVersion)
	cfg.Version = "4"
	plan, err := BuildPlan(cfg, "/show/v3/shot/comp_v3.0001.exr")
	if err != nil {
		t.Fatal(err)
	}
	if want := "version 3 -> 4 (file, folder level 2)"; plan.Note != want {
		t.Errorf("Note = %q, want %q", plan.Note, want)
	}
}

// --- bump-version ---

func TestBuildPlan_BumpVersion(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		mm      bool
		wantOut string
	}{
		{"keeps width", "/show/v009/comp_v009.0001.exr", false, "/show/v010/comp_v010.0001.exr"},
		{"grows past width", "/show/comp_v99.exr", false, "/show/comp_v100.exr"},
		{"folder version when file has none", "/show/v2/plate.0001.exr", false, "/show/v3/plate.0001.exr"},
		{"major minor keeps minor", "/show/comp_v3.2.0001.exr", true, "/show/comp_v4.2.0001.exr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCfg(config.OpBumpVersion)
			cfg.MajorMinor = tt.mm
			plan, err := BuildPlan(cfg, tt.path)
			if err != nil {
				t.Fatalf("BuildPlan: %v", err)
			}
			if plan.Action != ActionRename || plan.OutputPath != tt.wantOut {
				t.Errorf("got %s %q, want rename %q", plan.Action, plan.OutputPath, tt.wantOut)
			}
		})
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"1", "2", false},
		{"009", "010", false},
		{"99", "100", false},
		{"0", "1", false},
		{"x", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Bump(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Bump(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Bump(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// --- offset-frames ---

func TestBuildPlan_OffsetFrames(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		offset     int
		wantAction Action
		wantOut    string
		wantErr    bool
	}{
		{"forward keeps padding", "/r/comp.0042.exr", 1000, ActionRename, "/r/comp.1042.exr", false},
		{"backward", "/r/comp.1001.exr", -1000, ActionRename, "/r/comp.0001.exr", false},
		{"widens when needed", "/r/comp.9999.exr", 1, ActionRename, "/r/comp.10000.exr", false},
		{"placeholder skipped", "/r/comp.####.exr", 10, ActionSkip, "/r/comp.####.exr", false},
		{"no frame skipped", "/r/comp_v3.exr", 10, ActionSkip, "/r/comp_v3.exr", false},
		{"negative result", "/r/comp.0005.exr", -10, ActionRename, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCfg(config.OpOffsetFrames)
			cfg.FrameOffset = tt.offset
			plan, err := BuildPlan(cfg, tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildPlan: %v", err)
			}
			if plan.Action != tt.wantAction || plan.OutputPath != tt.wantOut {
				t.Errorf("got %s %q, want %s %q", plan.Action, plan.OutputPath, tt.wantAction, tt.wantOut)
			}
		})
	}
}

func TestAction_String(t *testing.T) {
	if ActionRename.String() != "rename" || ActionSkip.String() != "skip" || Action(9).String() != "unknown" {
		t.Error("unexpected Action strings")
	}
}
