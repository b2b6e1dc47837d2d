/*
Package checkpoint persists and restores full simulation snapshots. A
checkpoint is a pair of files in the data directory:

	checkpoint_NNNNN.csv  - the particle table, one row per particle
	checkpoint_NNNNN.yaml - scalar metadata (step index, internal energy)

Floats round-trip exactly (shortest decimal encoding), so a resumed run
reproduces a continuous one bit for bit.
*/
package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/gocarina/gocsv"

	"github.com/notargets/gosph/model_problems/SPH2D"
)

// ParticleRecord is one row of the checkpoint particle table.
type ParticleRecord struct {
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Vx      float64 `csv:"vx"`
	Vy      float64 `csv:"vy"`
	Mass    float64 `csv:"mass"`
	Density float64 `csv:"density"`
	Color   int     `csv:"color"`
	RhoRef  float64 `csv:"rho_ref"`
}

// Meta is the YAML sidecar holding the scalar state of a snapshot.
type Meta struct {
	Step           int     `yaml:"Step"`
	InternalEnergy float64 `yaml:"InternalEnergy"`
}

var checkpointName = regexp.MustCompile(`^checkpoint_(\d+)\.csv$`)

func csvPath(dataDir string, step int) string {
	return filepath.Join(dataDir, fmt.Sprintf("checkpoint_%05d.csv", step))
}

func metaPath(dataDir string, step int) string {
	return filepath.Join(dataDir, fmt.Sprintf("checkpoint_%05d.yaml", step))
}

// Save writes the snapshot for the given step. The state is read, never
// retained, so live solver views are safe to pass.
func Save(dataDir string, step int, s *SPH2D.State) (err error) {
	if err = os.MkdirAll(dataDir, 0755); err != nil {
		return
	}
	records := make([]ParticleRecord, len(s.Pos))
	for i := range s.Pos {
		records[i] = ParticleRecord{
			X:       s.Pos[i][0],
			Y:       s.Pos[i][1],
			Vx:      s.Vel[i][0],
			Vy:      s.Vel[i][1],
			Mass:    s.Mass[i],
			Density: s.Density[i],
			Color:   s.Color[i],
			RhoRef:  s.RhoRef[i],
		}
	}
	file, err := os.Create(csvPath(dataDir, step))
	if err != nil {
		return
	}
	defer file.Close()
	if err = gocsv.MarshalFile(&records, file); err != nil {
		return
	}
	meta := Meta{Step: step, InternalEnergy: s.InternalEnergy}
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return
	}
	return os.WriteFile(metaPath(dataDir, step), data, 0644)
}

// Load reads the snapshot for a specific step.
func Load(dataDir string, step int) (s *SPH2D.State, err error) {
	file, err := os.Open(csvPath(dataDir, step))
	if err != nil {
		return
	}
	defer file.Close()
	var records []ParticleRecord
	if err = gocsv.UnmarshalFile(file, &records); err != nil {
		return
	}
	s = &SPH2D.State{
		Pos:     make([][2]float64, len(records)),
		Vel:     make([][2]float64, len(records)),
		Mass:    make([]float64, len(records)),
		Density: make([]float64, len(records)),
		Color:   make([]int, len(records)),
		RhoRef:  make([]float64, len(records)),
	}
	for i, r := range records {
		s.Pos[i] = [2]float64{r.X, r.Y}
		s.Vel[i] = [2]float64{r.Vx, r.Vy}
		s.Mass[i] = r.Mass
		s.Density[i] = r.Density
		s.Color[i] = r.Color
		s.RhoRef[i] = r.RhoRef
	}
	data, err := os.ReadFile(metaPath(dataDir, step))
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err = yaml.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	s.InternalEnergy = meta.InternalEnergy
	return
}

// Steps lists every checkpointed step in the data directory, ascending. A
// missing directory is an empty list, not an error.
func Steps(dataDir string) (steps []int, err error) {
	entries, err := os.ReadDir(dataDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return
	}
	for _, e := range entries {
		m := checkpointName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, convErr := strconv.Atoi(m[1])
		if convErr != nil {
			continue
		}
		steps = append(steps, n)
	}
	sort.Ints(steps)
	return
}

// LatestStep scans the data directory for the most recent checkpoint and
// returns its step index, or -1 when none exists.
func LatestStep(dataDir string) (step int, err error) {
	steps, err := Steps(dataDir)
	if err != nil || len(steps) == 0 {
		return -1, err
	}
	return steps[len(steps)-1], nil
}

// LoadLatest restores the most recent snapshot. A nil state with step -1
// means no checkpoint exists and the caller should start fresh.
func LoadLatest(dataDir string) (step int, s *SPH2D.State, err error) {
	if step, err = LatestStep(dataDir); err != nil || step < 0 {
		return
	}
	fmt.Printf("Loading checkpoint: %s\n", csvPath(dataDir, step))
	s, err = Load(dataDir, step)
	return
}
