package grid

// ShaderParameters tunes the animation. It is configured externally and only read by
// the animator.
type ShaderParameters struct {
	ConvergeRadius   float32 `json:"convergeRadius"`
	ConvergeStrength float32 `json:"convergeStrength"`
	ConvergeSpeed    float32 `json:"convergeSpeed"`
	Speed            float32 `json:"speed"`
	MaxOffset        float32 `json:"maxOffset"`
}

func DefaultShaderParameters() ShaderParameters {
	return ShaderParameters{
		ConvergeRadius:   6,
		ConvergeStrength: 0.8,
		ConvergeSpeed:    2,
		Speed:            1,
		MaxOffset:        0.35,
	}
}
