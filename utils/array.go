package utils

// RemoveInt 移除切片里第一个等于 v 的元素
func RemoveInt(slice []int, v int) []int {
	for i, item := range slice {
		if item == v {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

// MinInt 返回切片中的最小值，空切片返回 0
func MinInt(slice []int) int {
	if len(slice) == 0 {
		return 0
	}
	min := slice[0]
	for _, v := range slice[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// ContainsInt 判断切片是否包含 v
func ContainsInt(slice []int, v int) bool {
	for _, item := range slice {
		if item == v {
			return true
		}
	}
	return false
}
