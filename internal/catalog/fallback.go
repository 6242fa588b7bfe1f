package catalog

func sub(label, href, description string) NavigationItem {
	return NavigationItem{Label: label, Href: href, Description: description}
}

func productTypes(types ...string) []NavigationItem {
	out := make([]NavigationItem, len(types))
	for i, t := range types {
		out[i] = NavigationItem{ProductType: t, Href: "/"}
	}
	return out
}

func team(label, href string, types ...string) NavigationItem {
	return NavigationItem{Label: label, Href: href, IconSrc: "/nav/icon.png", Subcategories: productTypes(types...)}
}

// FallbackHeader is served when the CMS header is unavailable.
func FallbackHeader() *Header {
	return &Header{
		PromotionalBanner: "Discount promotion/seasonal offer/....",
		LogoURL:           "/logo.svg",
		LogoAlt:           "HubsGe",
		NavigationItems: []NavigationItem{
			{
				Label: "ფან-შოპი",
				Href:  "/products/fan-shop",
				Subcategories: []NavigationItem{
					team("ფეხბურთის ნაკრები", "/products/fan-shop/football", "მაისური"),
					team("იბერია 1999", "/products/fan-shop/iberia", "მაისური", "საგულშემატკივრო მაისური", "აქსესუარები"),
					team("ტორპედო ქუთაისი", "/products/fan-shop/torpedo-kutaisi", "მაისური", "მოსაცმელი"),
					team("დინამო თბილისი", "/products/fan-shop/dinamo-tbilisi", "მაისური"),
					team("კალათბურთის ეროვნული ნაკრები", "/products/fan-shop/basketball", "მაისური", "მოსაცმელი", "შორტი", "ფან-მაისური", "სვიტერი", "აქსესუარები"),
					team("რაგბის ეროვნული ნაკრები", "/products/fan-shop/american-football", "მაისური", "შარვალი", "მოსაცმელი", "ქურთუკი", "აქსესუარები"),
				},
			},
			{
				Label: "ფიხტანი",
				Href:  "/products/fixtures",
				Subcategories: []NavigationItem{
					sub("სამზარეულო", "/products/fixtures/kitchen", "ონკანები და სამზარეულო აქსესუარები"),
					sub("სააბაზანო", "/products/fixtures/bathroom", "ონკანები და ხელსაბანი"),
					sub("შხაპები", "/products/fixtures/showers", ""),
					sub("ნიჟარები", "/products/fixtures/sinks", ""),
				},
			},
			{
				Label: "კალენი",
				Href:  "/products/stairs",
				Subcategories: []NavigationItem{
					sub("შიდა კიბეები", "/products/stairs/indoor", "კიბეები შიდა სივრცისთვის"),
					sub("გარე კიბეები", "/products/stairs/outdoor", "ამინდგამძლე კიბეები"),
					sub("სახელურები", "/products/stairs/railings", ""),
					sub("კიბის საფეხურები", "/products/stairs/treads", ""),
				},
			},
			{
				Label: "ბრენდები",
				Href:  "/products/brands",
				Subcategories: []NavigationItem{
					sub("პრემიუმ ბრენდები", "/products/brands/premium", "მაღალი ხარისხის ბრენდები"),
					sub("ეკონომ ბრენდები", "/products/brands/economy", "ხელმისაწვდომი ფასები"),
					sub("ადგილობრივი ბრენდები", "/products/brands/local", ""),
					sub("საერთაშორისო ბრენდები", "/products/brands/international", ""),
				},
			},
			{
				Label: "მაგაზიები",
				Href:  "/stores",
				Subcategories: []NavigationItem{
					sub("თბილისი", "/stores/tbilisi", "მაღაზიები დედაქალაქში"),
					sub("ბათუმი", "/stores/batumi", ""),
					sub("ქუთაისი", "/stores/kutaisi", ""),
					sub("რუსთავი", "/stores/rustavi", ""),
				},
			},
			{
				Label: "ქალი",
				Href:  "/products/women",
				Subcategories: []NavigationItem{
					sub("ტანსაცმელი", "/products/women/clothing", "კაბები, ბლუზები, შარვლები"),
					sub("ფეხსაცმელი", "/products/women/shoes", ""),
					sub("ჩანთები", "/products/women/bags", ""),
					sub("აქსესუარები", "/products/women/accessories", ""),
				},
			},
			{
				Label: "ფიტდაკოსმეტი",
				Href:  "/products/fitness-cosmetics",
				Subcategories: []NavigationItem{
					sub("ფიტნეს აქსესუარები", "/products/fitness/accessories", "სავარჯიშო აღჭურვილობა"),
					sub("კოსმეტიკა", "/products/cosmetics", "სხეულის მოვლის საშუალებები"),
					sub("ვიტამინები", "/products/fitness/vitamins", ""),
					sub("სპორტული კვება", "/products/fitness/nutrition", ""),
				},
			},
			{
				Label: "აქსესუარები",
				Href:  "/products/accessories",
				Subcategories: []NavigationItem{
					sub("სახლის აქსესუარები", "/products/accessories/home", "დეკორაციული ელემენტები"),
					sub("სამზარეულოს აქსესუარები", "/products/accessories/kitchen", ""),
					sub("სააბაზანოს აქსესუარები", "/products/accessories/bathroom", ""),
					sub("ორგანაიზერები", "/products/accessories/organizers", ""),
				},
			},
		},
	}
}
