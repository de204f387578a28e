package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zhangxy/bookshop/internal/infrastructure/config"
	"github.com/zhangxy/bookshop/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.L().Info("数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&SettingModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Points是积分余额（账本当前值），只通过AddPoints原子更新
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string    `gorm:"size:50;not null;comment:昵称"`
	Role      string    `gorm:"size:20;not null;default:user;comment:角色(user/admin)"`
	Points    int       `gorm:"not null;default:0;comment:积分余额"`
	Phone     string    `gorm:"size:30;comment:手机号"`
	Address   string    `gorm:"size:255;comment:默认收货地址"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:50;not null;comment:分类名"`
	Description string    `gorm:"size:255;comment:分类描述"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel GORM商品模型
// 设计说明:
// 1. 价格使用int64存储最小货币单位(避免浮点数精度问题)
// 2. SalePrice为空表示无促销价，生效售价 = COALESCE(sale_price, price)
// 3. Images/Specs以JSON文本存储，仓储层负责编解码
// 4. Stock是库存账本当前值，只通过UpdateStock原子更新
type ProductModel struct {
	ID              uint           `gorm:"primaryKey"`
	CategoryID      uint           `gorm:"index;not null;comment:分类ID"`
	Name            string         `gorm:"index:idx_search;size:200;not null;comment:书名"` // 搜索索引
	Author          string         `gorm:"index:idx_search;size:100;comment:作者"`          // 搜索索引
	Publisher       string         `gorm:"size:100;comment:出版社"`
	PublicationYear int            `gorm:"comment:出版年份"`
	Price           int64          `gorm:"index:idx_list;not null;comment:定价"` // 排序索引
	SalePrice       *int64         `gorm:"comment:促销价(空为无促销)"`
	Stock           int            `gorm:"not null;default:0;comment:库存数量"`
	Images          string         `gorm:"type:text;comment:图片URL列表(JSON)"`
	Description     string         `gorm:"type:text;comment:商品描述"`
	Specs           string         `gorm:"type:text;comment:规格参数(JSON)"`
	Rating          float64        `gorm:"not null;default:0;comment:平均评分"`
	ReviewCount     int            `gorm:"not null;default:0;comment:评价数"`
	CreatedAt       time.Time      `gorm:"index:idx_list;comment:创建时间"` // 排序索引
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// CartItemModel GORM购物车条目模型
// 同一用户同一商品只保留一行，重复加购走数量合并
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_product;not null;comment:用户ID"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null;comment:商品ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. Status存字符串字面值，与领域层Status枚举一致
// 4. 订单永不物理删除，不加DeletedAt
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	TotalAmount     int64            `gorm:"not null;comment:明细合计"`
	FinalAmount     int64            `gorm:"not null;comment:实付金额"`
	PointsEarned    int              `gorm:"not null;default:0;comment:完成可得积分(创建时固化)"`
	Status          string           `gorm:"index;size:20;not null;default:pending;comment:订单状态"`
	PaymentMethod   string           `gorm:"size:20;not null;default:cod;comment:支付方式"`
	ShippingName    string           `gorm:"size:50;not null;comment:收货人"`
	ShippingPhone   string           `gorm:"size:30;not null;comment:收货电话"`
	ShippingAddress string           `gorm:"size:255;not null;comment:收货地址"`
	ShippingNote    string           `gorm:"size:255;comment:备注"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"` // 一对多关联
	CreatedAt       time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// Price记录下单时的实际售价快照
type OrderItemModel struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   uint  `gorm:"index;not null;comment:订单ID"`
	ProductID uint  `gorm:"index;not null;comment:商品ID"`
	Quantity  int   `gorm:"not null;comment:购买数量"`
	Price     int64 `gorm:"not null;comment:下单时单价"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

// SettingModel GORM站点配置模型（键值对）
type SettingModel struct {
	Key       string    `gorm:"primaryKey;size:50;comment:配置键"`
	Value     string    `gorm:"type:text;comment:配置值"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (SettingModel) TableName() string {
	return "settings"
}
