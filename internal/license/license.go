// Package license holds the text printed by the -licenseinfo and
// -thirdparty flags.
package license

// Program is the vox2bella license.
const Program = `vox2bella

Copyright (c) 2025 Harvey Fong

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.`

// ThirdParty lists the licenses of bundled dependencies.
const ThirdParty = `====

hashicorp/go-getter

Copyright (c) HashiCorp, Inc.

Licensed under the Mozilla Public License, Version 2.0. You may obtain a
copy of the license at https://mozilla.org/MPL/2.0/.

====

klauspost/compress

Copyright (c) 2012 The Go Authors. All rights reserved.
Copyright (c) 2019 Klaus Post. All rights reserved.

Licensed under the BSD 3-Clause License; see
https://github.com/klauspost/compress/blob/master/LICENSE for the full text.

====

gopkg.in/yaml.v3

Copyright (c) 2006-2011 Kirill Simonov
Copyright (c) 2011-2019 Canonical Ltd

Licensed under the Apache License, Version 2.0, with portions under the MIT
License; see https://github.com/go-yaml/yaml/blob/v3/LICENSE.

====

modernc.org/sqlite

Copyright (c) 2017 The Sqlite Authors. All rights reserved.

Licensed under the BSD 3-Clause License; see
https://gitlab.com/cznic/sqlite/-/blob/master/LICENSE.`
