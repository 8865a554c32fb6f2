package migration

import "errors"

// ErrNoNeighbor は移動先の隣接ストラテジーが存在しない場合のエラー
var ErrNoNeighbor = errors.New("no adjacent strategy in that direction")
