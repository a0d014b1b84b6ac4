package protected

// Typed views over Get/Set. Reads resolve through both spellings, so a
// GetStr("name") keeps working after Protect("name"); writes go to the
// exact key and skip the store when the value is unchanged.

func (a *Attr) GetInt(key string) int {
	val := a.Get(key)
	if val == nil {
		return 0
	}
	return val.(int)
}

func (a *Attr) GetInt32(key string) int32 {
	val := a.Get(key)
	if val == nil {
		return 0
	}
	if v, ok := val.(int32); ok {
		return v
	}
	return int32(val.(int))
}

func (a *Attr) GetUInt32(key string) uint32 {
	val := a.Get(key)
	if val == nil {
		return 0
	}
	if v, ok := val.(uint32); ok {
		return v
	}
	return uint32(val.(int))
}

func (a *Attr) GetInt64(key string) int64 {
	val := a.Get(key)
	if val == nil {
		return 0
	}
	if v, ok := val.(int64); ok {
		return v
	}
	return int64(val.(int))
}

func (a *Attr) GetUInt64(key string) uint64 {
	val := a.Get(key)
	if val == nil {
		return 0
	}
	if v, ok := val.(uint64); ok {
		return v
	}
	return uint64(val.(int64))
}

func (a *Attr) GetFloat32(key string) float32 {
	val := a.Get(key)
	if val == nil {
		return 0
	}
	if v, ok := val.(float32); ok {
		return v
	}
	return float32(val.(float64))
}

func (a *Attr) GetFloat64(key string) float64 {
	val := a.Get(key)
	if val == nil {
		return 0
	}
	return val.(float64)
}

func (a *Attr) GetBool(key string) bool {
	val := a.Get(key)
	if val == nil {
		return false
	}
	return val.(bool)
}

func (a *Attr) GetStr(key string) string {
	val := a.Get(key)
	if val == nil {
		return ""
	}
	return val.(string)
}

func (a *Attr) SetInt(key string, v int) {
	if a.GetInt(key) == v {
		return
	}
	a.Set(key, v)
}

func (a *Attr) SetInt32(key string, v int32) {
	if a.GetInt32(key) == v {
		return
	}
	a.Set(key, v)
}

func (a *Attr) SetUInt32(key string, v uint32) {
	if a.GetUInt32(key) == v {
		return
	}
	a.Set(key, v)
}

func (a *Attr) SetInt64(key string, v int64) {
	if a.GetInt64(key) == v {
		return
	}
	a.Set(key, v)
}

func (a *Attr) SetUInt64(key string, v uint64) {
	if a.GetUInt64(key) == v {
		return
	}
	a.Set(key, v)
}

func (a *Attr) SetFloat32(key string, v float32) {
	if a.GetFloat32(key) == v {
		return
	}
	a.Set(key, v)
}

func (a *Attr) SetFloat64(key string, v float64) {
	if a.GetFloat64(key) == v {
		return
	}
	a.Set(key, v)
}

func (a *Attr) SetBool(key string, v bool) {
	if a.GetBool(key) == v {
		return
	}
	a.Set(key, v)
}

func (a *Attr) SetStr(key string, v string) {
	if a.GetStr(key) == v {
		return
	}
	a.Set(key, v)
}
