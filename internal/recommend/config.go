package recommend

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/similarity"
)

// Config holds every weighting constant of the scoring function.
//
//	final = Alpha*aa + Beta*(jac*JaccardScale) + Gamma*(text*TextScale)
//
// where text is forced to 0 when jac < StructuralThreshold, and multiplied by
// FranchiseBoost when it passed the gate and exceeds FranchiseThreshold.
type Config struct {
	// TypeWeights feed the weighted Jaccard. Default 0.7/0.4/0.05/0.1.
	TypeWeights similarity.TypeWeights `koanf:"type_weights" json:"type_weights"`

	// Rarity scales Adamic–Adar credit. Default person 5, country 0.1, other 1.
	Rarity similarity.RarityFactors `koanf:"rarity" json:"rarity"`

	// Alpha weighs Adamic–Adar. Default 0.4.
	Alpha float64 `koanf:"alpha" json:"alpha" validate:"gte=0"`

	// Beta weighs the rescaled Jaccard. Default 0.4.
	Beta float64 `koanf:"beta" json:"beta" validate:"gte=0"`

	// Gamma weighs the rescaled name similarity. Default 0.2.
	Gamma float64 `koanf:"gamma" json:"gamma" validate:"gte=0"`

	// JaccardScale brings jac (0..1) near Adamic–Adar magnitudes. Default 10.
	JaccardScale float64 `koanf:"jaccard_scale" json:"jaccard_scale" validate:"gte=0"`

	// TextScale does the same for the name ratio. Default 5.
	TextScale float64 `koanf:"text_scale" json:"text_scale" validate:"gte=0"`

	// StructuralThreshold is the minimum jac for name similarity to count.
	// Default 1.0: only an exact weighted-attribute match lets it through.
	StructuralThreshold float64 `koanf:"structural_threshold" json:"structural_threshold" validate:"gte=0"`

	// FranchiseThreshold is the name ratio above which the boost applies. Default 0.6.
	FranchiseThreshold float64 `koanf:"franchise_threshold" json:"franchise_threshold" validate:"gte=0,lte=1"`

	// FranchiseBoost multiplies a gated name ratio above the threshold. Default 8.
	FranchiseBoost float64 `koanf:"franchise_boost" json:"franchise_boost" validate:"gte=0"`

	// TopN is the result count when a query does not ask for one. Default 5.
	TopN int `koanf:"top_n" json:"top_n" validate:"gte=1"`

	// Precision is the number of decimals kept in returned scores. Default 4.
	Precision int `koanf:"precision" json:"precision" validate:"gte=0,lte=10"`

	// CacheSize bounds the memoised (label, n) results. 0 disables. Default 1024.
	CacheSize int `koanf:"cache_size" json:"cache_size" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		TypeWeights:         similarity.DefaultTypeWeights(),
		Rarity:              similarity.DefaultRarityFactors(),
		Alpha:               0.4,
		Beta:                0.4,
		Gamma:               0.2,
		JaccardScale:        10.0,
		TextScale:           5.0,
		StructuralThreshold: 1.0,
		FranchiseThreshold:  0.6,
		FranchiseBoost:      8.0,
		TopN:                5,
		Precision:           4,
		CacheSize:           1024,
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
