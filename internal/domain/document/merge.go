package document

// Merge deep-merges docs into a new Map. Later documents extend earlier ones:
// nested mappings merge recursively, sequences are concatenated and any other
// colliding value is replaced by the later one. Inputs are never mutated.
func Merge(docs ...*Map) *Map {
	merged := New()
	for _, doc := range docs {
		mergeInto(merged, doc)
	}
	return merged
}

func mergeInto(dst, src *Map) {
	_ = src.Each(func(key string, value any) error {
		existing, ok := dst.Get(key)
		if !ok {
			dst.Set(key, Clone(value))
			return nil
		}

		switch srcVal := value.(type) {
		case *Map:
			if dstMap, ok := existing.(*Map); ok {
				mergeInto(dstMap, srcVal)
				return nil
			}
		case []any:
			if dstSeq, ok := existing.([]any); ok {
				joined := make([]any, 0, len(dstSeq)+len(srcVal))
				joined = append(joined, dstSeq...)
				joined = append(joined, Clone(srcVal).([]any)...)
				dst.Set(key, joined)
				return nil
			}
		}
		dst.Set(key, Clone(value))
		return nil
	})
}

// Clone returns a deep copy of v.
func Clone(v any) any {
	switch val := v.(type) {
	case *Map:
		out := New()
		_ = val.Each(func(k string, inner any) error {
			out.Set(k, Clone(inner))
			return nil
		})
		return out
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = Clone(val[i])
		}
		return out
	default:
		return v
	}
}
