package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/interval"
)

// PlanTime YAML'da saniye (100.5) veya zaman ifadesi ("00:01:40.5") olarak yazılabilen değerdir.
type PlanTime float64

// UnmarshalYAML sayı ve zaman ifadelerini kabul eder.
func (p *PlanTime) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("satir %d: zaman degeri bekleniyordu", node.Line)
	}
	secs, err := format.ParseSeconds(node.Value)
	if err != nil {
		return fmt.Errorf("satir %d: %w", node.Line, err)
	}
	*p = PlanTime(secs)
	return nil
}

// MarshalYAML okunabilir zaman ifadesi yazar.
func (p PlanTime) MarshalYAML() (interface{}, error) {
	return format.HumanSeconds(float64(p)), nil
}

// PlanRange plan dosyasındaki tek bir hariç tutma aralığıdır.
type PlanRange struct {
	Start PlanTime `yaml:"start"`
	End   PlanTime `yaml:"end"`
}

// Plan bir bölme işleminin kaydedilebilir tanımıdır.
type Plan struct {
	Video      string      `yaml:"video,omitempty"`
	TargetGb   float64     `yaml:"target_gb,omitempty"`
	OutputDir  string      `yaml:"output_dir,omitempty"`
	Exclusions []PlanRange `yaml:"exclusions,omitempty"`
}

// NewPlan oturum değerlerinden plan oluşturur.
func NewPlan(video string, targetGb float64, outputDir string, exclusions []interval.TimeInterval) Plan {
	p := Plan{Video: video, TargetGb: targetGb, OutputDir: outputDir}
	for _, ex := range exclusions {
		p.Exclusions = append(p.Exclusions, PlanRange{Start: PlanTime(ex.StartSecs), End: PlanTime(ex.EndSecs)})
	}
	return p
}

// Intervals hariç tutma aralıklarını döner. Bitişi başlangıçtan büyük olmayan aralık hatadır.
func (p Plan) Intervals() ([]interval.TimeInterval, error) {
	out := make([]interval.TimeInterval, 0, len(p.Exclusions))
	for i, r := range p.Exclusions {
		if r.End <= r.Start {
			return nil, fmt.Errorf("exclusions[%d]: bitis baslangictan buyuk olmali", i)
		}
		out = append(out, interval.TimeInterval{StartSecs: float64(r.Start), EndSecs: float64(r.End)})
	}
	return out, nil
}

// LoadPlan YAML plan dosyasını okur.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan dosyasi okunamadi: %w", err)
	}

	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("plan dosyasi gecersiz (%s): %w", path, err)
	}
	if p.TargetGb != 0 && !format.IsValidPartitionSize(p.TargetGb) {
		return nil, fmt.Errorf("plan dosyasi gecersiz: target_gb 0-100 GB araliginda olmali")
	}
	if _, err := p.Intervals(); err != nil {
		return nil, fmt.Errorf("plan dosyasi gecersiz: %w", err)
	}
	return &p, nil
}

// SavePlan planı YAML olarak atomik şekilde yazar.
func SavePlan(path string, p Plan) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data, 0644)
}
