package game

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
)

// NeuralInputs is the feature vector size: one plane of agent pieces, one of
// opponent pieces, and a side-to-move flag.
const NeuralInputs = 2*Rows*Columns + 1

// NeuralConfig describes the network architecture and, once trained, its
// weights.
type NeuralConfig struct {
	HiddenLayers []int         `json:"hidden_layers"`
	LearningRate float64       `json:"learning_rate"`
	Weights      [][][]float64 `json:"weights,omitempty"`
}

func DefaultNeuralConfig() NeuralConfig {
	return NeuralConfig{
		HiddenLayers: []int{32, 16},
		LearningRate: 0.01,
	}
}

// NeuralEvaluator is a learned evaluation function. The forward pass of a
// go-deep network is not reentrant, so calls are serialized.
type NeuralEvaluator struct {
	mu      sync.Mutex
	network *deep.Neural
	config  NeuralConfig
}

func NewNeuralEvaluator(config NeuralConfig) *NeuralEvaluator {
	layout := append(append([]int{}, config.HiddenLayers...), 1)
	network := deep.NewNeural(&deep.Config{
		Inputs:     NeuralInputs,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.1, 0.0),
		Bias:       true,
	})
	if config.Weights != nil {
		network.ApplyWeights(config.Weights)
	}
	return &NeuralEvaluator{network: network, config: config}
}

// LoadNeuralEvaluator reads a NeuralConfig written by Save.
func LoadNeuralEvaluator(path string) (*NeuralEvaluator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file: %w", err)
	}
	var config NeuralConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode network file: %w", err)
	}
	if config.Weights == nil {
		return nil, fmt.Errorf("network file %s has no weights", path)
	}
	return NewNeuralEvaluator(config), nil
}

func (n *NeuralEvaluator) Save(path string) error {
	n.mu.Lock()
	config := n.config
	config.Weights = n.network.Weights()
	n.mu.Unlock()

	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write network file: %w", err)
	}
	return nil
}

// Evaluate has the Evaluate signature. Decided games are scored exactly;
// everything else is the network's prediction.
func (n *NeuralEvaluator) Evaluate(s State, p Perspective) float64 {
	b, ok := s.(*Board)
	if !ok {
		panic("unexpected state type")
	}
	switch {
	case b.IsWin(p.Agent):
		return WinValue - float64(b.moves)
	case b.IsLose(p.Agent):
		return -WinValue + float64(b.moves)
	case b.IsFull():
		return 0
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	return n.network.Predict(Features(b, p))[0]
}

// Features encodes a board for the network from the perspective's agent
// point of view.
func Features(b *Board, p Perspective) []float64 {
	features := make([]float64, NeuralInputs)
	plane := Rows * Columns
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			i := row*Columns + col
			switch b.cells[row][col] {
			case p.Agent:
				features[i] = 1
			case p.Agent.Opponent():
				features[plane+i] = 1
			}
		}
	}
	if p.ToMove == p.Agent {
		features[2*plane] = 1
	}
	return features
}

// Sample is one labelled position: Outcome is the final game score from
// Perspective.Agent's point of view.
type Sample struct {
	Board       *Board
	Perspective Perspective
	Outcome     float64
}

// Train fits the network to samples with plain SGD.
func (n *NeuralEvaluator) Train(samples []Sample, epochs int) error {
	if len(samples) == 0 {
		return fmt.Errorf("no training samples")
	}
	examples := make(training.Examples, 0, len(samples))
	for _, s := range samples {
		examples = append(examples, training.Example{
			Input:    Features(s.Board, s.Perspective),
			Response: []float64{s.Outcome},
		})
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	trainer := training.NewTrainer(training.NewSGD(n.config.LearningRate, 0.5, 0.0, false), 0)
	trainer.Train(n.network, examples, examples, epochs)
	return nil
}
