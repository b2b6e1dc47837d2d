package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParametersSPH struct {
	Title              string     `yaml:"Title"`
	H                  float64    `yaml:"H"`  // Smoothing length
	Dt                 float64    `yaml:"DT"` // Fixed time step
	MaxSteps           int        `yaml:"MaxSteps"`
	P0                 float64    `yaml:"P0"` // Reference pressure in the Tait EOS
	Gravity            [2]float64 `yaml:"Gravity"`
	Alpha              float64    `yaml:"Alpha"` // Artificial viscosity coefficient
	Beta               float64    `yaml:"Beta"`  // Secondary viscosity coefficient, normally 0
	CheckpointInterval int        `yaml:"CheckpointInterval"`
	StatusInterval     int        `yaml:"StatusInterval"`
	ProcLimit          int        `yaml:"ProcLimit"` // 0 means one goroutine per CPU
	DataDir            string     `yaml:"DataDir"`
	DomainWidth        float64    `yaml:"DomainWidth"`
	DomainHeight       float64    `yaml:"DomainHeight"`
	ParticleSpacing    float64    `yaml:"ParticleSpacing"`
	DensityLight       float64    `yaml:"DensityLight"`
	DensityHeavy       float64    `yaml:"DensityHeavy"`
	InterfaceLevel     float64    `yaml:"InterfaceLevel"`
}

// Defaults reproduces the reference Rayleigh-Taylor run configuration.
func Defaults() (ip *InputParametersSPH) {
	ip = &InputParametersSPH{
		Title:              "Rayleigh-Taylor Instability",
		H:                  0.0005,
		Dt:                 0.000004,
		MaxSteps:           80000,
		P0:                 100000.,
		Gravity:            [2]float64{0, -100.},
		Alpha:              0.01,
		Beta:               0.,
		CheckpointInterval: 300,
		StatusInterval:     500,
		DataDir:            "data",
		DomainWidth:        0.1,
		DomainHeight:       0.05,
		ParticleSpacing:    0.00028,
		DensityLight:       1000.,
		DensityHeavy:       3000.,
		InterfaceLevel:     0.0333333333,
	}
	return
}

func (ip *InputParametersSPH) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersSPH) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.6f\t\t= H (smoothing length)\n", ip.H)
	fmt.Printf("%8.2e\t\t= DT\n", ip.Dt)
	fmt.Printf("[%d]\t\t\t= Max Steps\n", ip.MaxSteps)
	fmt.Printf("%8.1f\t\t= P0\n", ip.P0)
	fmt.Printf("%v\t= Gravity\n", ip.Gravity)
	fmt.Printf("%8.5f\t\t= Alpha (viscosity)\n", ip.Alpha)
	fmt.Printf("[%d]\t\t\t= Checkpoint Interval\n", ip.CheckpointInterval)
	fmt.Printf("[%d]\t\t\t= Status Interval\n", ip.StatusInterval)
	fmt.Printf("%8.4f x%8.4f\t= Domain\n", ip.DomainWidth, ip.DomainHeight)
	fmt.Printf("%8.1f /%8.1f\t= Light / Heavy Density\n", ip.DensityLight, ip.DensityHeavy)
}
