package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"groStats/internal/airdrop"
	"groStats/internal/config"
	"groStats/internal/model"
	"groStats/internal/proof"
)

type eligibility struct {
	Address             string                   `json:"address"`
	Airdrops            []model.UserAirdrop      `json:"airdrops"`
	VestingAirdrop      model.UserVestingAirdrop `json:"vesting_airdrop"`
	UnavailableSections []string                 `json:"unavailable_sections,omitempty"`
}

func runAirdrops(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadProofs(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	address := strings.TrimSpace(args[0])
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid address %q", address)
	}
	address = strings.ToLower(common.HexToAddress(address).Hex())

	registry := proof.NewRegistry(proofConfig(cfg.DataDir, cfg.VestingFile, cfg.FirstRound), logger)
	registry.Reload()
	resolver := airdrop.NewResolver(registry, logger)

	out := eligibility{
		Address:        address,
		Airdrops:       resolver.Resolve(address),
		VestingAirdrop: resolver.ResolveVesting(address, nil),
	}
	for _, section := range []string{model.SectionAirdrops, model.SectionVestingAirdrop} {
		if !resolver.Available(section) {
			out.UnavailableSections = append(out.UnavailableSections, section)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
