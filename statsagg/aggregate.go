package statsagg

// Aggregate merges a variable number of Records into one Record with the
// same key set. Numeric values are concatenated into a []float64 in call
// order (a prior scalar or list extends with the next record's value
// under the same key); non-numeric values keep their first occurrence.
//
// Aggregation is associative: Aggregate(Aggregate(s1,s2), s3) equals
// Aggregate(s1, Aggregate(s2,s3)), because it folds left-to-right via the
// same pairwise combine at every step.
func Aggregate(records ...Record) Record {
	switch len(records) {
	case 0:
		return Record{}
	case 1:
		return records[0]
	case 2:
		return combine(records[0], records[1])
	default:
		acc := records[0]
		for _, r := range records[1:] {
			acc = combine(acc, r)
		}
		return acc
	}
}

// combine folds b into a, per Record's documented semantics.
func combine(a, b Record) Record {
	out := make(Record, len(a))
	numericKeys := make(map[string]bool, len(a))

	for k, v := range a {
		switch vv := v.(type) {
		case float64:
			out[k] = []float64{vv}
			numericKeys[k] = true
		case int:
			out[k] = []float64{float64(vv)}
			numericKeys[k] = true
		case []float64:
			cp := make([]float64, len(vv))
			copy(cp, vv)
			out[k] = cp
			numericKeys[k] = true
		default:
			out[k] = v
		}
	}

	for k := range numericKeys {
		bv, ok := b[k]
		if !ok {
			continue
		}
		cur := out[k].([]float64)
		switch vv := bv.(type) {
		case float64:
			out[k] = append(cur, vv)
		case int:
			out[k] = append(cur, float64(vv))
		case []float64:
			out[k] = append(cur, vv...)
		}
	}

	return out
}
