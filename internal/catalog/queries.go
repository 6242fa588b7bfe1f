package catalog

const imageFields = `name
      alternativeText
      width
      height
      url
      previewUrl`

const navigationSelection = `navigationItems {
    id
    label
    href
    subcategories {
      id
      label
      href
      iconSrc
      description
      productType
      subcategories {
        id
        label
        href
        iconSrc
        description
        productType
        subcategories {
          id
          label
          href
          iconSrc
          description
          productType
        }
      }
    }
  }`

const fanShopBanner = `Banner {
    id
    buttonText
    Image {
      width
      height
      ext
      url
      name
    }
  }`

const fanShopProducts = `productList {
    id
    productImage {
      width
      height
      ext
      url
      name
    }
    productName
    slug
    price
    discountedPrice
    averageRating
    discountPercent
    isFavourite
  }`

const productsQuery = `query Products($locale: I18NLocaleCode, $sort: [String], $pagination: PaginationArg, $filters: ProductFiltersInput) {
  products_connection(locale: $locale, sort: $sort, pagination: $pagination, filters: $filters) {
    nodes {
      name
      slug
      shortDescription
      averageRating
      price
      discountPrice
      discountPercentage
      isFavourite
      category {
        name
        slug
      }
      gallery {
      ` + imageFields + `
      }
      mainImage {
      ` + imageFields + `
      }
    }
    pageInfo {
      page
      pageSize
      pageCount
      total
    }
  }
  categories(locale: $locale) {
    name
    slug
  }
}
`

const productQuery = `query Product($locale: I18NLocaleCode, $filters: ProductFiltersInput) {
  products(locale: $locale, filters: $filters) {
    name
    slug
    documentId
    price
    discountPrice
    discountPercentage
    shortDescription
    detailedDescription
    averageRating
    hasBranding
    isFavourite
    category {
      name
    }
    gallery {
      url
      name
      width
      height
      alternativeText
      documentId
    }
    mainImage {
      url
      name
      width
      height
      alternativeText
      documentId
    }
    reviews {
      comment
      reviewerName
      rating
    }
    availableSizes {
      productSize
    }
    avaliableColors {
      hexCode
      colorName
    }
  }
}
`

const brandPageQuery = `query BrandPage($locale: I18NLocaleCode, $sort: [String]) {
  brandPage(locale: $locale) {
    title
    viewMore
    allBrands
    brand_items(sort: $sort) {
      UID
      name
      image {
        name
        alternativeText
        width
        height
        url
      }
    }
  }
  brands {
    UID
    name
  }
}
`
