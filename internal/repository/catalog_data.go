package repository

import (
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedBooks() []domain.Book {
	return []domain.Book{
		{ID: 1, Title: "Don Quixote", Author: "Miguel de Cervantes", Year: 1605, Category: domain.BookCategoryClassics, ImageURL: "https://covers.openlibrary.org/b/id/8231856-L.jpg", Synopsis: "A country gentleman reads too many chivalric romances and sets out as a knight-errant.", Price: price("25.99")},
		{ID: 2, Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", Year: 1967, Category: domain.BookCategoryFiction, ImageURL: "https://covers.openlibrary.org/b/id/8370236-L.jpg", Synopsis: "Seven generations of the Buendía family in the town of Macondo.", Price: price("19.90")},
		{ID: 3, Title: "A Brief History of Time", Author: "Stephen Hawking", Year: 1988, Category: domain.BookCategoryScience, ImageURL: "https://covers.openlibrary.org/b/id/240726-L.jpg", Synopsis: "From the big bang to black holes, explained for the general reader.", Price: price("17.50")},
		{ID: 4, Title: "Cosmos", Author: "Carl Sagan", Year: 1980, Category: domain.BookCategoryScience, ImageURL: "https://covers.openlibrary.org/b/id/10466530-L.jpg", Synopsis: "A tour of the universe and of the history of science.", Price: price("21.00")},
		{ID: 5, Title: "Sapiens", Author: "Yuval Noah Harari", Year: 2011, Category: domain.BookCategoryHistory, ImageURL: "https://covers.openlibrary.org/b/id/8167231-L.jpg", Synopsis: "How Homo sapiens came to dominate the planet.", Price: price("22.90")},
		{ID: 6, Title: "The Guns of August", Author: "Barbara W. Tuchman", Year: 1962, Category: domain.BookCategoryHistory, ImageURL: "https://covers.openlibrary.org/b/id/6974921-L.jpg", Synopsis: "The first month of the First World War.", Price: price("18.40")},
		{ID: 7, Title: "The Little Prince", Author: "Antoine de Saint-Exupéry", Year: 1943, Category: domain.BookCategoryChildren, ImageURL: "https://covers.openlibrary.org/b/id/10708272-L.jpg", Synopsis: "A pilot stranded in the desert meets a boy from a tiny asteroid.", Price: price("12.95")},
		{ID: 8, Title: "Matilda", Author: "Roald Dahl", Year: 1988, Category: domain.BookCategoryChildren, ImageURL: "https://covers.openlibrary.org/b/id/8314135-L.jpg", Synopsis: "A gifted girl takes on the adults who underestimate her.", Price: price("9.99")},
		{ID: 9, Title: "The Shadow of the Wind", Author: "Carlos Ruiz Zafón", Year: 2001, Category: domain.BookCategoryFiction, ImageURL: "https://covers.openlibrary.org/b/id/8231990-L.jpg", Synopsis: "A boy rescues a forgotten novel and uncovers the fate of its author.", Price: price("16.75")},
		{ID: 10, Title: "The Gene", Author: "Siddhartha Mukherjee", Year: 2016, Category: domain.BookCategoryScience, ImageURL: "https://covers.openlibrary.org/b/id/8259447-L.jpg", Synopsis: "An intimate history of heredity.", Price: price("24.00")},
		{ID: 11, Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813, Category: domain.BookCategoryClassics, ImageURL: "https://covers.openlibrary.org/b/id/8091016-L.jpg", Synopsis: "Elizabeth Bennet and Mr Darcy misjudge each other.", Price: price("11.50")},
		{ID: 12, Title: "The Name of the Wind", Author: "Patrick Rothfuss", Year: 2007, Category: domain.BookCategoryFiction, ImageURL: "https://covers.openlibrary.org/b/id/8231432-L.jpg", Synopsis: "Kvothe tells the story of how he became a legend.", Price: price("20.25")},
	}
}

func seedProducts() []domain.CafeteriaProduct {
	yes := true
	p := func(id int, name, category, amount, description, image string) domain.CafeteriaProduct {
		return domain.CafeteriaProduct{
			ID:          id,
			Name:        name,
			ImageURL:    "https://images.unsplash.com/" + image + "?w=400",
			Price:       price(amount),
			Category:    category,
			Description: description,
			Available:   &yes,
		}
	}
	return []domain.CafeteriaProduct{
		p(1, "Espresso", domain.ProductCategoryCoffee, "1.50", "Intense, aromatic espresso from selected beans.", "photo-1510591509098-f4fdc6d0ff04"),
		p(2, "Americano", domain.ProductCategoryCoffee, "2.00", "Smooth americano, made for long study sessions.", "photo-1509042239860-f550ce710b93"),
		p(3, "Cappuccino", domain.ProductCategoryCoffee, "2.50", "Creamy cappuccino with velvety milk foam.", "photo-1572442388796-11668a67e53d"),
		p(4, "Latte", domain.ProductCategoryCoffee, "2.80", "Mild latte with steamed milk.", "photo-1561047029-3000c68339ca"),
		p(5, "Mocha", domain.ProductCategoryCoffee, "3.20", "Coffee, chocolate and milk.", "photo-1578374173705-88fce8e8b4fb"),
		p(6, "Green Tea", domain.ProductCategoryDrink, "1.80", "Natural green tea.", "photo-1564890369478-c89ca6d9cde9"),
		p(7, "Hot Chocolate", domain.ProductCategoryDrink, "2.50", "Creamy hot chocolate with whipped cream.", "photo-1542990253-0d0f5be5f0ed"),
		p(8, "Fresh Orange Juice", domain.ProductCategoryDrink, "3.00", "Freshly squeezed orange juice.", "photo-1600271886742-f049cd451bba"),
		p(9, "Fruit Smoothie", domain.ProductCategoryDrink, "3.50", "Seasonal fruit smoothie.", "photo-1505252585461-04db1eb84625"),
		p(10, "Mineral Water", domain.ProductCategoryDrink, "1.20", "Still mineral water, served cold.", "photo-1548839140-29a749e1cf4d"),
		p(11, "Croissant", domain.ProductCategorySnack, "1.80", "Freshly baked butter croissant.", "photo-1555507036-ab1f4038808a"),
		p(12, "Chocolate Muffin", domain.ProductCategorySnack, "2.20", "Homemade muffin with chocolate chips.", "photo-1607958996333-41aef7caefaa"),
		p(13, "Wholegrain Toast", domain.ProductCategorySnack, "2.50", "Wholegrain toast with olive oil and tomato.", "photo-1525351484163-7529414344d8"),
		p(14, "Veggie Sandwich", domain.ProductCategorySnack, "4.50", "Fresh sandwich with vegetables and cheese.", "photo-1528735602780-2552fd46c7af"),
		p(15, "Oat Cookie", domain.ProductCategorySnack, "1.50", "Oat and raisin cookie.", "photo-1558961363-fa8fdf82db35"),
		p(16, "Brownie", domain.ProductCategorySnack, "2.80", "Dark chocolate brownie with walnuts.", "photo-1607920591413-4ec007e70023"),
	}
}

func seedReviews() []domain.Review {
	return []domain.Review{
		{ID: 1, BookID: 1, Rating: 5, Comment: "A classic that still reads fresh.", Date: "2024-10-01"},
		{ID: 2, BookID: 1, Rating: 4, Comment: "Long, but worth every chapter.", Date: "2024-10-03"},
		{ID: 3, BookID: 3, Rating: 5, Comment: "Made cosmology approachable for me.", Date: "2024-10-05"},
		{ID: 4, BookID: 5, Rating: 4, Comment: "Provocative and easy to read.", Date: "2024-10-07"},
		{ID: 5, BookID: 7, Rating: 5, Comment: "I reread it every year.", Date: "2024-10-09"},
	}
}
