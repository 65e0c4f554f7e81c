// Package taxonomy holds the static category tree and city list used by
// listing forms and filters. The data is constant; nothing here touches
// storage.
package taxonomy

type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

var Categories = []Category{
	{
		ID:   "electronics",
		Name: "Электроника",
		Subcategories: []Subcategory{
			{ID: "phones", Name: "Телефоны"},
			{ID: "laptops", Name: "Ноутбуки и ПК"},
			{ID: "audio", Name: "Аудиотехника"},
			{ID: "consoles", Name: "Игровые приставки"},
		},
	},
	{
		ID:   "clothing",
		Name: "Одежда и обувь",
		Subcategories: []Subcategory{
			{ID: "mens", Name: "Мужская одежда"},
			{ID: "womens", Name: "Женская одежда"},
			{ID: "shoes", Name: "Обувь"},
			{ID: "accessories", Name: "Аксессуары"},
		},
	},
	{
		ID:   "home",
		Name: "Дом и сад",
		Subcategories: []Subcategory{
			{ID: "furniture", Name: "Мебель"},
			{ID: "appliances", Name: "Бытовая техника"},
			{ID: "tools", Name: "Инструменты"},
		},
	},
	{
		ID:   "hobby",
		Name: "Хобби и спорт",
		Subcategories: []Subcategory{
			{ID: "sports", Name: "Спортинвентарь"},
			{ID: "music", Name: "Музыкальные инструменты"},
			{ID: "books", Name: "Книги"},
		},
	},
	{
		ID:   "transport",
		Name: "Транспорт",
		Subcategories: []Subcategory{
			{ID: "bicycles", Name: "Велосипеды"},
			{ID: "scooters", Name: "Самокаты"},
			{ID: "parts", Name: "Запчасти"},
		},
	},
	{
		ID:   "other",
		Name: "Разное",
		Subcategories: []Subcategory{
			{ID: "misc", Name: "Прочее"},
		},
	},
}

var Cities = []string{
	"Киев",
	"Харьков",
	"Одесса",
	"Днепр",
	"Львов",
	"Запорожье",
	"Винница",
	"Полтава",
	"Чернигов",
	"Черкассы",
}

func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func CategoryName(id string) string {
	if c, ok := CategoryByID(id); ok {
		return c.Name
	}
	return id
}

func SubcategoryName(categoryID, subcategoryID string) string {
	c, ok := CategoryByID(categoryID)
	if !ok {
		return subcategoryID
	}
	for _, sc := range c.Subcategories {
		if sc.ID == subcategoryID {
			return sc.Name
		}
	}
	return subcategoryID
}
