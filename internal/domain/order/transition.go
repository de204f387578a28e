package order

// Effects 一次状态流转的副作用清单
// 设计说明：
// 1. 副作用由(旧状态, 新状态)二元组唯一决定，而不是只看目标状态——
//    取消一个completed订单要扣回积分，取消pending订单则不扣；
//    两者目标状态相同，副作用完全不同
// 2. 调用方必须把账本变更（库存、积分）与状态写入放进同一事务；
//    通知类副作用放在事务提交之后
type Effects struct {
	PointsDelta      int  // +1发放/-1回收（乘以订单PointsEarned），0无变化
	Restock          bool // 是否按明细数量回补库存
	NotifyShipping   bool // 是否发送发货通知
	NotifyCompletion bool // 是否发送完成感谢通知
}

// TransitionEffects 计算从old到new的流转副作用
// 规则表：
//   - 同状态重复设置：各账本均无动作（幂等）
//   - 非shipping → shipping：发货通知
//   - 非completed → completed：发放积分 + 感谢通知
//   - completed → 非completed：回收积分（余额下限0由账本保证）
//   - pending → cancelled：回补库存
//   - completed → returned：回补库存（叠加上一条的积分回收）
func TransitionEffects(old, new Status) Effects {
	var e Effects
	if old == new {
		return e
	}

	if new == StatusShipping {
		e.NotifyShipping = true
	}

	if old != StatusCompleted && new == StatusCompleted {
		e.PointsDelta = 1
		e.NotifyCompletion = true
	}
	if old == StatusCompleted && new != StatusCompleted {
		e.PointsDelta = -1
	}

	if (old == StatusPending && new == StatusCancelled) ||
		(old == StatusCompleted && new == StatusReturned) {
		e.Restock = true
	}

	return e
}
