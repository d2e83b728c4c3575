// Package tiles drives the external tippecanoe binary to package GeoJSON
// layers into a PMTiles archive.
package tiles

import (
	"fmt"
	"os/exec"
)

// Layer pairs a tile layer name with its GeoJSON source file
type Layer struct {
	Name string
	Path string
}

// includedProperties are the only feature properties carried into tiles;
// everything else is stripped to keep the archive small.
var includedProperties = []string{
	"start_ts",
	"end_ts",
	"dist_km",
	"duration_min",
}

// LookupTippecanoe resolves the tippecanoe binary on PATH
func LookupTippecanoe(bin string) (string, error) {
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("tippecanoe binary %q not found, install tippecanoe (e.g. brew install tippecanoe): %w", bin, err)
	}
	return resolved, nil
}

// BuildArgs assembles the tippecanoe invocation for a PMTiles build
func BuildArgs(outPath string, maxZoom int, layers []Layer) []string {
	args := []string{
		"-o", outPath,
		"--force",
		"--minimum-zoom=0",
		fmt.Sprintf("--maximum-zoom=%d", maxZoom),
		// Aggressive size optimization; PMTiles handles compression itself
		"--drop-densest-as-needed",
		"--coalesce-densest-as-needed",
		"--simplify-only-low-zooms",
		"--no-tile-compression",
	}
	for _, inc := range includedProperties {
		args = append(args, "--include="+inc)
	}
	for _, layer := range layers {
		args = append(args, "-L", fmt.Sprintf("%s:%s", layer.Name, layer.Path))
	}
	return args
}

// BuildPMTiles runs tippecanoe over the given layers
func BuildPMTiles(tippecanoeBin, outPath string, maxZoom int, layers []Layer) error {
	cmd := exec.Command(tippecanoeBin, BuildArgs(outPath, maxZoom, layers)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("tippecanoe failed: %w: %s", err, out)
	}
	return nil
}
