/*
Package revisit builds study configuration documents for the reVISit user
study platform.

A study is a tree of sequences over components. Components are pages such as
markdown text, images, websites, questionnaires or react widgets, and carry
the responses participants give. The tree can be expanded from tabular data
and crossed with factorial designs before the study is serialized.

# Building in Go

	intro, _ := revisit.NewComponent("intro", revisit.Fields{"type": "markdown", "path": "assets/intro.md"})
	trial, _ := revisit.NewComponent("trial", revisit.Fields{
		"type":       "react-component",
		"path":       "assets/Scatter.tsx",
		"parameters": map[string]any{"r1": "datum:r1"},
	})

	rows, _ := revisit.Data("jnd.csv")
	block, _ := revisit.NewSequence(revisit.Random)
	trials, _ := block.Add(trial).FromRows(rows)

	root, _ := revisit.NewSequence(revisit.Fixed)
	root.Add(intro).Concat(trials)

	doc, err := revisit.NewStudy(metadata, ui, root).Build()
	if err != nil {
		log.Fatal(err)
	}
	doc.Save("public/jnd/config.json")

# Recipes

The same study can be written as a YAML or JSON recipe and built with
LoadRecipe or the revisit command:

	revisit build study.yaml --out public/jnd/config.json --assets ../study

See package github.com/aretw0/revisit/pkg/adapters/recipe for the format.

# Errors

Validation failures wrap domain.ErrValidation and name the offending field.
Broken references found when building wrap domain.ErrStructural. Failed asset
copies wrap domain.ErrAsset.
*/
package revisit
