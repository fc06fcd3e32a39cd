package voxel

// hash3 mixes integer voxel coordinates and a salt into 64 well-distributed
// bits. It is a pure function: the same inputs always give the same output.
func hash3(i, j, k int, salt uint64) uint64 {
	h := uint64(int64(i))*0x8da6b343 ^ uint64(int64(j))*0xd8163841 ^ uint64(int64(k))*0xcb1ab31f
	h ^= salt * 0x9e3779b97f4a7c15
	// splitmix64 finalizer
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

// unitHash maps hash3 onto [0, 1).
func unitHash(i, j, k int, salt uint64) float64 {
	return float64(hash3(i, j, k, salt)>>11) / (1 << 53)
}

// signedHash maps hash3 onto [-1, 1).
func signedHash(i, j, k int, salt uint64) float64 {
	return unitHash(i, j, k, salt)*2 - 1
}
