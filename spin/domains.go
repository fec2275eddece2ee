// SPDX-License-Identifier: MIT

package spin

import "github.com/katalvlaran/isingmc/lattice"

// Domains finds all connected same-spin regions of c under adj.
// Returns one slice of site indices per domain, in BFS order, domains ordered
// by their smallest site index. adj must describe the same lattice size.
//
// Time:   O(N·d).
// Memory: O(N) for visited flags and output.
func (c *Configuration) Domains(adj *lattice.Adjacency) [][]int {
	n := len(c.spins)
	seen := make([]bool, n)
	var doms [][]int

	for i0 := 0; i0 < n; i0++ {
		if seen[i0] {
			continue
		}
		s := c.spins[i0]
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, v := range adj.Neighbors(u) {
				if !seen[v] && c.spins[v] == s {
					seen[v] = true
					queue = append(queue, int(v))
				}
			}
		}
		doms = append(doms, queue)
	}
	return doms
}
