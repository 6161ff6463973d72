package constant

// AsciiArtLogo is the application's banner shown above the root command help.
const AsciiArtLogo = `
 __      __      __  __
/\ \  __/\ \    /\ \/\ \
\ \ \/\ \ \ \   \ \ \_\ \     __      ___      __      __
 \ \ \ \ \ \ \   \ \  _  \  /'__'\  /' _ '\  /'_ '\  /'__'\
  \ \ \_/ \_\ \   \ \ \ \ \/\ \L\.\_/\ \/\ \/\ \L\ \/\ \L\.\_
   \ '\___x___/    \ \_\ \_\ \__/.\_\ \_\ \_\ \____ \ \__/.\_\
    '\/__//__/      \/_/\/_/\/__/\/_/\/_/\/_/\/___L\ \/__/\/_/
                                               /\____/
                                               \_/__/`
