// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package graph

import (
	"math"

	"github.com/galvanized/animrt/value"
)

// blendPair is one (weight, value) contribution gathered from a blend
// node's variadic values_<N>/weights_<N> inputs. Weights pair with values
// by sorted position when the counts match; a single weight is broadcast
// to every value; any other weight count gives every value weight 1.
type blendPair struct {
	weight float64
	value  value.Value
}

func gatherBlendPairs(inputs map[string]PortValue) []blendPair {
	values := gatherVariadic(inputs, "values")
	weights := gatherVariadic(inputs, "weights")
	out := make([]blendPair, len(values))
	for i, v := range values {
		w := 1.0
		switch {
		case len(weights) == len(values):
			w = asFloat(weights[i].Value)
		case len(weights) == 1:
			w = asFloat(weights[0].Value)
		}
		out[i] = blendPair{weight: w, value: v.Value}
	}
	return out
}

func evalBlendNode(node *NodeSpec, inputs map[string]PortValue) (map[string]PortValue, bool) {
	switch node.Kind {
	case KindBlendWeightedAverage:
		return single(blendWeightedAverage(gatherBlendPairs(inputs))), true
	case KindBlendAdditive:
		return single(blendAdditive(gatherBlendPairs(inputs))), true
	case KindBlendMultiply:
		return single(blendMultiply(gatherBlendPairs(inputs))), true
	case KindBlendMax:
		return single(blendMax(gatherBlendPairs(inputs))), true
	default:
		return nil, false
	}
}

func blendWeightedAverage(pairs []blendPair) value.Value {
	if len(pairs) == 0 {
		return value.Float(0)
	}
	acc := pairs[0].value
	totalWeight := pairs[0].weight
	acc = broadcastUnary(acc, func(x float64) float64 { return x * pairs[0].weight })
	for _, p := range pairs[1:] {
		scaled := broadcastUnary(p.value, func(x float64) float64 { return x * p.weight })
		acc = broadcastBinary(acc, scaled, func(a, b float64) float64 { return a + b })
		totalWeight += p.weight
	}
	if totalWeight == 0 {
		return acc
	}
	return broadcastUnary(acc, func(x float64) float64 { return x / totalWeight })
}

func blendAdditive(pairs []blendPair) value.Value {
	if len(pairs) == 0 {
		return value.Float(0)
	}
	acc := broadcastUnary(pairs[0].value, func(x float64) float64 { return x * pairs[0].weight })
	for _, p := range pairs[1:] {
		scaled := broadcastUnary(p.value, func(x float64) float64 { return x * p.weight })
		acc = broadcastBinary(acc, scaled, func(a, b float64) float64 { return a + b })
	}
	return acc
}

func blendMultiply(pairs []blendPair) value.Value {
	if len(pairs) == 0 {
		return value.Float(1)
	}
	acc := pairs[0].value
	for _, p := range pairs[1:] {
		acc = broadcastBinary(acc, p.value, func(a, b float64) float64 { return a * b })
	}
	return acc
}

// blendMax picks, component-wise, the contribution with the largest
// weight-scaled magnitude at that lane.
func blendMax(pairs []blendPair) value.Value {
	if len(pairs) == 0 {
		return value.Float(0)
	}
	shape := value.InferShape(pairs[0].value)
	best, err := value.Flatten(pairs[0].value)
	if err != nil {
		return pairs[0].value
	}
	bestScaled := make([]float64, len(best.Data))
	for i, s := range best.Data {
		bestScaled[i] = s * pairs[0].weight
	}
	for _, p := range pairs[1:] {
		flat, err := value.Flatten(p.value)
		if err != nil || !value.ShapeEqual(flat.Shape, shape) {
			continue
		}
		for i, s := range flat.Data {
			scaled := s * p.weight
			if math.Abs(scaled) > math.Abs(bestScaled[i]) {
				bestScaled[i] = scaled
				best.Data[i] = s
			}
		}
	}
	out, err := value.Coerce(shape, value.Vector(best.Data))
	if err != nil {
		return pairs[0].value
	}
	return out
}
