package mocks

// MockRenderer はテスト用の音声レンダラモック
type MockRenderer struct {
	EstimateCalls     int
	ResynthesizeCalls int
	LastTarget        []float64
	LastSpeedRatio    float64
	LastFormantShift  float64
	Err               error
}

// NewMockRenderer は新しいMockRendererを作成します
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{}
}

// EstimatePitch はピッチ推定の呼び出しを記録します
func (r *MockRenderer) EstimatePitch(samples []float64, sampleRate int) ([]float64, []float64, error) {
	r.EstimateCalls++
	if r.Err != nil {
		return nil, nil, r.Err
	}
	timestamps := make([]float64, len(samples))
	frequencies := make([]float64, len(samples))
	for i := range samples {
		timestamps[i] = float64(i) * 0.01
		frequencies[i] = 440.0
	}
	return timestamps, frequencies, nil
}

// Resynthesize は再合成の呼び出しを記録し、入力をそのまま返します
func (r *MockRenderer) Resynthesize(samples []float64, sampleRate int, timestamps, frequencies, targetPitch []float64, speedRatio, formantShift float64) ([]float64, error) {
	r.ResynthesizeCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	r.LastTarget = targetPitch
	r.LastSpeedRatio = speedRatio
	r.LastFormantShift = formantShift
	return samples, nil
}
