package extract

// similarityRatio measures how alike two strings are as
// 2*matches/(len(a)+len(b)), where matches is the total length of the
// longest matching blocks found by repeatedly splitting around the longest
// common substring. Returns a value in [0, 1].
func similarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := 0
	type region struct{ alo, ahi, blo, bhi int }
	stack := []region{{0, len(a), 0, len(b)}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j, size := longestMatch(a, b, r.alo, r.ahi, r.blo, r.bhi)
		if size == 0 {
			continue
		}
		matched += size
		if r.alo < i && r.blo < j {
			stack = append(stack, region{r.alo, i, r.blo, j})
		}
		if i+size < r.ahi && j+size < r.bhi {
			stack = append(stack, region{i + size, r.ahi, j + size, r.bhi})
		}
	}
	return 2 * float64(matched) / float64(len(a)+len(b))
}

// longestMatch finds the longest common substring of a[alo:ahi] and
// b[blo:bhi], returning its start positions and length.
func longestMatch(a, b string, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
