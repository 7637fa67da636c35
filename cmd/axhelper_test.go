package cmd

import (
	"testing"

	"github.com/keyclick/keyclick/internal/discovery"
)

func TestAXHelperCommand_IsHidden(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() != discovery.HelperCommand {
			continue
		}
		if !c.Hidden {
			t.Error("helper command should be hidden")
		}
		if !c.DisableFlagParsing {
			t.Error("helper command must take bare positional arguments")
		}
		if !c.SilenceErrors || !c.SilenceUsage {
			t.Error("helper command must keep stderr to the JSON error line")
		}
		return
	}
	t.Errorf("%s command not registered on root", discovery.HelperCommand)
}

func TestAXHelperCommand_OwnsPreRun(t *testing.T) {
	// The subprocess must not re-run config loading or permission
	// prompting; a blocked prompt would eat the helper timeout.
	if axHelperCmd.PersistentPreRunE == nil {
		t.Fatal("helper command should override the root PersistentPreRunE")
	}
	if err := axHelperCmd.PersistentPreRunE(axHelperCmd, nil); err != nil {
		t.Errorf("helper PersistentPreRunE should be a no-op, got %v", err)
	}
}
