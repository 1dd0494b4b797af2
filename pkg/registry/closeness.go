// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package registry

import "sort"

// jaroWinkler computes the Jaro-Winkler similarity of s and t in [0, 1],
// used to rank quickfix suggestions for an unresolved component name
// against the names actually declared on a prototype.
func jaroWinkler(s, t string) float64 {
	if s == t {
		return 1
	}

	sl, tl := len(s), len(t)
	if sl == 0 || tl == 0 {
		return 0
	}

	matchDist := sl
	if tl > matchDist {
		matchDist = tl
	}

	matchDist = matchDist/2 - 1
	if matchDist < 0 {
		matchDist = 0
	}

	sMatched := make([]bool, sl)
	tMatched := make([]bool, tl)

	matches := 0

	for i := 0; i < sl; i++ {
		lo := i - matchDist
		if lo < 0 {
			lo = 0
		}

		hi := i + matchDist + 1
		if hi > tl {
			hi = tl
		}

		for j := lo; j < hi; j++ {
			if tMatched[j] || s[i] != t[j] {
				continue
			}

			sMatched[i] = true
			tMatched[j] = true
			matches++

			break
		}
	}

	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0

	for i := 0; i < sl; i++ {
		if !sMatched[i] {
			continue
		}

		for !tMatched[k] {
			k++
		}

		if s[i] != t[k] {
			transpositions++
		}

		k++
	}

	m := float64(matches)
	jaro := (m/float64(sl) + m/float64(tl) + (m-float64(transpositions)/2)/m) / 3

	prefix := 0
	for prefix < 4 && prefix < sl && prefix < tl && s[prefix] == t[prefix] {
		prefix++
	}

	return jaro + float64(prefix)*0.1*(1-jaro)
}

// ClosestNames exposes closestNames to other packages (the analyzer's
// UnresolvedIdent quickfix ranks local/package names the same way
// ResolveComponent ranks component names).
func ClosestNames(name string, pool []string, limit int) []string {
	return closestNames(name, pool, limit)
}

// closestNames returns up to limit candidates from pool sorted by
// descending closeness to name, used to render "did you mean ...?"
// quickfixes for unresolved components and identifiers.
func closestNames(name string, pool []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	candidates := make([]scored, 0, len(pool))

	for _, p := range pool {
		candidates = append(candidates, scored{p, jaroWinkler(name, p)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	out := make([]string, 0, limit)

	for _, c := range candidates[:limit] {
		if c.score < 0.7 {
			break
		}

		out = append(out, c.name)
	}

	return out
}
