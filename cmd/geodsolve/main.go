// Command geodsolve solves geodesic problems on the WGS84 ellipsoid.
//
// It reads one problem per line from stdin and writes one solution per
// line to stdout.  The default mode solves the direct problem; flags select
// the other operations:
//
//	geodsolve             lat1 lon1 azi1 s12  ->  lat2 lon2 a12
//	geodsolve -i          lat1 lon1 lat2 lon2 ->  azi1 azi2 s12 a12
//	geodsolve -c          lat lon h           ->  x y z
//	geodsolve -f lat0,lon0   lat lon          ->  x y
//	geodsolve -r lat0,lon0   x y              ->  lat lon
//
// Angles are in degrees, distances and coordinates in meters.  A line the
// engine rejects (for example a latitude outside [-90,90]) prints ERROR and
// processing continues.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/coursekit/geodesic/shim"
)

func main() {
	inverse := flag.Bool("i", false, "solve the inverse geodesic problem")
	geocent := flag.Bool("c", false, "convert to geocentric coordinates")
	fwd := flag.String("f", "", "gnomonic forward projection centered at lat0,lon0")
	rev := flag.String("r", "", "gnomonic reverse projection centered at lat0,lon0")
	version := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *version {
		fmt.Printf("%s (%s)\n", shim.EngineVersion(), shim.ToolchainVersion())
		return
	}

	solve, nargs, err := pickMode(*inverse, *geocent, *fwd, *rev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "geodsolve: %v\n", err)
		os.Exit(2)
	}

	scanner := bufio.NewScanner(os.Stdin)
	status := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := parseFloats(line, nargs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "geodsolve: %v\n", err)
			fmt.Println("ERROR")
			status = 1
			continue
		}
		out, ok := solve(args)
		if !ok {
			fmt.Println("ERROR")
			status = 1
			continue
		}
		fmt.Println(out)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "geodsolve: %v\n", err)
		status = 1
	}
	os.Exit(status)
}

func pickMode(inverse, geocent bool, fwd, rev string) (
	func([]float64) (string, bool), int, error) {
	modes := 0
	for _, set := range []bool{inverse, geocent, fwd != "", rev != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return nil, 0, fmt.Errorf("at most one of -i, -c, -f, -r may be given")
	}
	switch {
	case inverse:
		return func(a []float64) (string, bool) {
			sln := shim.Inverse(a[0], a[1], a[2], a[3])
			if !sln.OK {
				return "", false
			}
			return fmt.Sprintf("%.8f %.8f %.3f %.8f",
				sln.Azi1, sln.Azi2, sln.S12, sln.A12), true
		}, 4, nil
	case geocent:
		return func(a []float64) (string, bool) {
			pt := shim.ToGeocentric(a[0], a[1], a[2])
			if !pt.OK {
				return "", false
			}
			return fmt.Sprintf("%.3f %.3f %.3f", pt.X, pt.Y, pt.Z), true
		}, 3, nil
	case fwd != "":
		lat0, lon0 := parseCenter(fwd)
		return func(a []float64) (string, bool) {
			pt := shim.Project(lat0, lon0, a[0], a[1])
			if !pt.OK {
				return "", false
			}
			return fmt.Sprintf("%.3f %.3f", pt.X, pt.Y), true
		}, 2, nil
	case rev != "":
		lat0, lon0 := parseCenter(rev)
		return func(a []float64) (string, bool) {
			pt := shim.Unproject(lat0, lon0, a[0], a[1])
			if !pt.OK {
				return "", false
			}
			return fmt.Sprintf("%.8f %.8f", pt.Lat, pt.Lon), true
		}, 2, nil
	default:
		return func(a []float64) (string, bool) {
			sln := shim.Direct(a[0], a[1], a[2], a[3])
			if !sln.OK {
				return "", false
			}
			return fmt.Sprintf("%.8f %.8f %.8f",
				sln.Lat2, sln.Lon2, sln.A12), true
		}, 4, nil
	}
}

func parseCenter(s string) (lat0, lon0 float64) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		fmt.Fprintf(os.Stderr, "geodsolve: center must be lat0,lon0: %q\n", s)
		os.Exit(2)
	}
	var err error
	if lat0, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		fmt.Fprintf(os.Stderr, "geodsolve: bad center latitude: %v\n", err)
		os.Exit(2)
	}
	if lon0, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		fmt.Fprintf(os.Stderr, "geodsolve: bad center longitude: %v\n", err)
		os.Exit(2)
	}
	return lat0, lon0
}

func parseFloats(line string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	vals := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %v", f, err)
		}
		vals[i] = v
	}
	return vals, nil
}
