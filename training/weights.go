package training

import (
	"blokus/searcher"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomWeights draws every coefficient uniformly from [-1, 1) and
// normalizes the result.
func RandomWeights(src rand.Source) searcher.Weights {
	uniform := distuv.Uniform{Min: -1, Max: 1, Src: src}
	var w searcher.Weights
	for i := range w {
		w[i] = uniform.Rand()
	}
	return w.Normalize()
}

// Mutate adds independent Gaussian noise with standard deviation sigma to
// every coefficient of parent and normalizes the result.
func Mutate(parent searcher.Weights, sigma float64, src rand.Source) searcher.Weights {
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	w := parent.Normalize()
	for i := range w {
		w[i] += noise.Rand()
	}
	return w.Normalize()
}
