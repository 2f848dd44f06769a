// Command wasmregtool is a development harness for the register-IR
// translator: it reads a tiny textual operator-list fixture (see
// fixture.go), drives pkg/translator over it, and prints the resulting
// register-IR via pkg/disasm. It is not a Wasm parser and its fixture
// format is not a published interface — just an internal dev CLI built
// on cobra for free flag/help handling.
package main

import (
	"fmt"
	"os"

	"github.com/minz/wasmreg/pkg/disasm"
	"github.com/minz/wasmreg/pkg/fuelscript"
	"github.com/minz/wasmreg/pkg/translator"
	"github.com/minz/wasmreg/pkg/version"
	"github.com/minz/wasmreg/pkg/wasmshape"
	"github.com/spf13/cobra"
)

var (
	fuelScriptFile string
	features       []string
)

var rootCmd = &cobra.Command{
	Use:     "wasmregtool [fixture file]",
	Short:   "Translate a textual operator-list fixture to register IR and print it",
	Version: version.GetVersion(),
	Long: `wasmregtool reads a line-oriented fixture like:

  func (param i32 i32) (result i32)
  local.get 0
  local.get 1
  i32.add
  return

and prints the register-IR a real module decoder + translator pairing
would produce for that function body.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "wasmregtool: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&fuelScriptFile, "fuel-script", "", "path to a Lua script returning a fuel cost table")
	rootCmd.Flags().StringSliceVar(&features, "feature", nil, "enable a proposal feature (sign-ext, nontrap-f2i, bulk-memory, reftypes, tail-call)")
	rootCmd.SetVersionTemplate(version.GetFullVersion() + "\n")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	fx, err := parseFixture(string(src))
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	header := flatHeader{self: wasmshape.FuncType{Params: fx.params, Results: fx.results}}
	tr := translator.NewFuncTranslator(cfg, header, translator.Allocations{}, fx.params, fx.results)

	for _, ev := range fx.events {
		if err := tr.Visit(ev); err != nil {
			return fmt.Errorf("translating: %w", err)
		}
	}
	// The outermost block frame (the function body itself) only pops on
	// an explicit `end` event; a fixture that omits the trailing `end`
	// line (as the minimal examples do) still needs it to finalize.
	if err := tr.Visit(translator.Event{Op: translator.OpEnd}); err != nil {
		return fmt.Errorf("finalizing function body: %w", err)
	}

	entity, _, err := tr.Finish()
	if err != nil {
		return fmt.Errorf("finishing translation: %w", err)
	}

	fmt.Print(disasm.Disassemble(entity))
	return nil
}

func buildConfig() (translator.EngineConfig, error) {
	var cfg translator.EngineConfig
	names := map[string]translator.FeatureSet{
		"sign-ext":    translator.FeatureSignExtension,
		"nontrap-f2i": translator.FeatureNontrappingFloatToInt,
		"bulk-memory": translator.FeatureBulkMemory,
		"reftypes":    translator.FeatureReferenceTypes,
		"tail-call":   translator.FeatureTailCall,
	}
	for _, f := range features {
		bit, ok := names[f]
		if !ok {
			return cfg, fmt.Errorf("unknown --feature %q", f)
		}
		cfg.EnabledFeatures |= bit
	}

	if fuelScriptFile != "" {
		script, err := os.ReadFile(fuelScriptFile)
		if err != nil {
			return cfg, fmt.Errorf("reading fuel script: %w", err)
		}
		provider, err := fuelscript.Load(string(script))
		if err != nil {
			return cfg, err
		}
		cfg.FuelCosts = provider
	}
	return cfg, nil
}
