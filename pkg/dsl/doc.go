/*
Package dsl provides the sequence tree used to lay out a reVISit study.

A Sequence records an ordering policy and an ordered list of children, each a
reference to a component or a nested sequence. Trees are built with fluent
calls and transformed by data-driven expansion, factorial permutation and
callback mapping. Every transform rebuilds the tree instead of editing it.

Example usage:

	package main

	import (
		"github.com/aretw0/revisit/pkg/domain"
		"github.com/aretw0/revisit/pkg/dsl"
	)

	func main() {
		trial := domain.MustComponent("trial", domain.Fields{
			"type": "react-component",
			"path": "widgets/Scatter.tsx",
			"parameters": map[string]any{"r": "datum:r"},
		})

		rows := []domain.Row{domain.RowOf("r", 0.3), domain.RowOf("r", 0.6)}
		trials, _ := dsl.MustSequence(domain.OrderRandom).Add(trial).FromRows(rows)

		design, _ := trials.Permute([]domain.Row{
			domain.RowOf("palette", "warm"),
			domain.RowOf("palette", "cool"),
		}, domain.OrderLatinSquare, 0)

		root := dsl.MustSequence(domain.OrderFixed).Concat(design)
		_ = root
	}
*/
package dsl
