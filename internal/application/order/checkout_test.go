package order

import (
	"context"
	"testing"

	"github.com/zhangxy/bookshop/internal/domain/cart"
	"github.com/zhangxy/bookshop/internal/domain/order"
	"github.com/zhangxy/bookshop/internal/domain/product"
)

func checkoutFixture(stocks map[uint]int, lines []cart.Line, allowOversell bool) (*CheckoutUseCase, *fakeOrderRepo, *fakeProductRepo, *fakeCartRepo) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo(stocks)
	cartRepo := &fakeCartRepo{lines: lines}
	uc := NewCheckoutUseCase(orderRepo, productRepo, cartRepo, &fakeTxManager{}, allowOversell)
	return uc, orderRepo, productRepo, cartRepo
}

// TestCheckout_Success 正常结算：扣库存、固化快照价格、清空购物车
func TestCheckout_Success(t *testing.T) {
	uc, orderRepo, productRepo, cartRepo := checkoutFixture(
		map[uint]int{1: 10, 2: 5},
		[]cart.Line{
			{ProductID: 1, ProductName: "Go程序设计语言", UnitPrice: 50000, Quantity: 2},
			{ProductID: 2, ProductName: "数据密集型应用系统设计", UnitPrice: 30000, Quantity: 1},
		},
		false,
	)

	resp, err := uc.Execute(context.Background(), CheckoutRequest{
		UserID:          1,
		ShippingName:    "张三",
		ShippingPhone:   "13800138000",
		ShippingAddress: "北京市海淀区",
	})
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}

	// 金额 = 50000*2 + 30000 = 130000分，积分 = 130000/1000 = 130
	if resp.FinalAmount != 130000 {
		t.Errorf("实付金额应为130000, 实际: %d", resp.FinalAmount)
	}
	if resp.PointsEarned != 130 {
		t.Errorf("预计积分应为130, 实际: %d", resp.PointsEarned)
	}
	if resp.Status != "pending" {
		t.Errorf("新订单状态应为pending, 实际: %s", resp.Status)
	}
	if len(resp.OrderNo) != 20 {
		t.Errorf("订单号应为20位, 实际: %q", resp.OrderNo)
	}

	// 库存已扣减
	if productRepo.stocks[1] != 8 || productRepo.stocks[2] != 4 {
		t.Errorf("库存扣减错误: %v", productRepo.stocks)
	}

	// 购物车已清空
	if !cartRepo.cleared {
		t.Error("结算成功后应清空购物车")
	}

	// 订单明细固化了快照价格
	o, err := orderRepo.FindByID(context.Background(), resp.OrderID)
	if err != nil {
		t.Fatalf("订单未落库: %v", err)
	}
	if len(o.Items) != 2 {
		t.Fatalf("明细数量应为2, 实际: %d", len(o.Items))
	}
	if o.Items[0].Price != 50000 || o.Items[0].Quantity != 2 {
		t.Errorf("明细快照错误: %+v", o.Items[0])
	}
}

// TestCheckout_EmptyCart 空购物车拒单
func TestCheckout_EmptyCart(t *testing.T) {
	uc, _, _, cartRepo := checkoutFixture(map[uint]int{}, nil, false)

	_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	if err != order.ErrEmptyCart {
		t.Errorf("空购物车应返回ErrEmptyCart, 实际: %v", err)
	}
	if cartRepo.cleared {
		t.Error("拒单后不应清空购物车")
	}
}

// TestCheckout_InsufficientStock 库存不足整单失败
func TestCheckout_InsufficientStock(t *testing.T) {
	uc, orderRepo, _, cartRepo := checkoutFixture(
		map[uint]int{1: 1},
		[]cart.Line{{ProductID: 1, UnitPrice: 50000, Quantity: 2}},
		false,
	)

	_, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	if err != product.ErrInsufficientStock {
		t.Errorf("库存不足应返回ErrInsufficientStock, 实际: %v", err)
	}
	if len(orderRepo.orders) != 0 {
		t.Error("库存不足时不应创建订单")
	}
	if cartRepo.cleared {
		t.Error("结算失败不应清空购物车")
	}
}

// TestCheckout_AllowOversell 超卖开关开启时跳过库存校验，库存可为负
func TestCheckout_AllowOversell(t *testing.T) {
	uc, orderRepo, productRepo, _ := checkoutFixture(
		map[uint]int{1: 1},
		[]cart.Line{{ProductID: 1, UnitPrice: 50000, Quantity: 3}},
		true,
	)

	resp, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	if err != nil {
		t.Fatalf("超卖模式下应接单: %v", err)
	}
	if productRepo.stocks[1] != -2 {
		t.Errorf("超卖后库存应为-2, 实际: %d", productRepo.stocks[1])
	}
	if len(orderRepo.orders) != 1 || resp.Status != "pending" {
		t.Errorf("超卖订单应正常创建: %+v", resp)
	}
}

// TestCheckout_DefaultPaymentMethod 未指定支付方式时默认货到付款
func TestCheckout_DefaultPaymentMethod(t *testing.T) {
	uc, orderRepo, _, _ := checkoutFixture(
		map[uint]int{1: 10},
		[]cart.Line{{ProductID: 1, UnitPrice: 999, Quantity: 1}},
		false,
	)

	resp, err := uc.Execute(context.Background(), CheckoutRequest{UserID: 1})
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}

	o, _ := orderRepo.FindByID(context.Background(), resp.OrderID)
	if o.PaymentMethod != order.PaymentCOD {
		t.Errorf("默认支付方式应为cod, 实际: %s", o.PaymentMethod)
	}
	// 999分不足1000，不产生积分
	if o.PointsEarned != 0 {
		t.Errorf("999分订单积分应为0, 实际: %d", o.PointsEarned)
	}
}
