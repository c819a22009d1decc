package proof

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"groStats/internal/model"
)

// DefaultFirstRound is the index of the first retained airdrop file after sorting.
// Earlier rounds are legacy and never reported.
const DefaultFirstRound = 7

// ErrLoad marks a proof file that could not be read or parsed.
var ErrLoad = errors.New("proof load failure")

// Config locates the proof files on disk.
type Config struct {
	AirdropDir  string
	VestingFile string
	FirstRound  int
}

// Load reads every proof file once. Failures never abort the load: the affected
// section is marked unavailable and whatever loaded before the failure is kept.
func Load(cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	var unavailable []string

	airdrops, err := loadAirdrops(cfg.AirdropDir, cfg.FirstRound, logger)
	if err != nil {
		logger.Error("read airdrop proofs", zap.Error(err), zap.Int("loaded", len(airdrops)))
		logger.Warn("Section <ethereum->airdrops> not available in personal stats")
		unavailable = append(unavailable, model.SectionAirdrops)
	}

	vesting, err := loadVesting(cfg.VestingFile, logger)
	if err != nil {
		logger.Error("read vesting airdrop proofs", zap.Error(err))
		logger.Warn("Section <ethereum->vesting_airdrop> not available in personal stats")
		vesting = model.EmptyVestingDefinition()
		unavailable = append(unavailable, model.SectionVestingAirdrop)
	}

	return NewStore(airdrops, vesting, unavailable...)
}

func loadAirdrops(dir string, firstRound int, logger *zap.Logger) ([]model.AirdropDefinition, error) {
	if firstRound < 0 {
		firstRound = 0
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir %s: %v", ErrLoad, dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	airdrops := make([]model.AirdropDefinition, 0, len(files))
	for i := firstRound; i < len(files); i++ {
		var def model.AirdropDefinition
		if err := readJSON(filepath.Join(dir, files[i]), &def); err != nil {
			return airdrops, err
		}
		if invalid := countInvalidAddresses(def.Proofs); invalid > 0 {
			logger.Warn("airdrop proofs with malformed addresses",
				zap.String("file", files[i]),
				zap.Int("count", invalid),
			)
		}
		airdrops = append(airdrops, def)
	}

	logger.Info("airdrop proof files ready",
		zap.String("dir", dir),
		zap.Strings("files", files),
		zap.Int("retained", len(airdrops)),
	)
	return airdrops, nil
}

func loadVesting(path string, logger *zap.Logger) (model.VestingAirdropDefinition, error) {
	var def model.VestingAirdropDefinition
	if err := readJSON(path, &def); err != nil {
		return model.VestingAirdropDefinition{}, err
	}
	logger.Info("vesting airdrop proof file ready",
		zap.String("file", path),
		zap.String("name", def.Name),
		zap.Int("entries", len(def.Airdrops)),
	)
	return def, nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrLoad, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrLoad, path, err)
	}
	return nil
}

func countInvalidAddresses(proofs map[string]model.AirdropProof) int {
	var invalid int
	for addr := range proofs {
		if !common.IsHexAddress(strings.TrimSpace(addr)) {
			invalid++
		}
	}
	return invalid
}
