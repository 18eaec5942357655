package source

import (
	"github.com/xaionaro-go/avlatency/types"
)

type Rational = types.Rational

var RationalFromApproxFloat64 = types.RationalFromApproxFloat64
